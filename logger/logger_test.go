package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestForEnvironment(t *testing.T) {
	dev := ForEnvironment("development")
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "info", dev.Level)
	assert.Equal(t, "stdout", dev.Output)

	prod := ForEnvironment("production")
	assert.Equal(t, "json", prod.Format)
}

func TestConfig_Override(t *testing.T) {
	prod := ForEnvironment("production").Override("debug", "", "")
	assert.Equal(t, "json", prod.Format, "an empty format keeps the environment default")
	assert.Equal(t, "debug", prod.Level)
	assert.Equal(t, "stdout", prod.Output)

	dev := ForEnvironment("development").Override("", "json", "stderr")
	assert.Equal(t, "json", dev.Format)
	assert.Equal(t, "info", dev.Level)
	assert.Equal(t, "stderr", dev.Output)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"development", ForEnvironment("development")},
		{"production", ForEnvironment("production")},
		{"stderr debug", Config{Level: "debug", Format: "console", Output: "stderr"}},
		{"zero value", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payoff.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Named("simulator").Debug("payoff simulated", zap.Int("months", 16))
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "simulator", entry["logger"])
	assert.Equal(t, "payoff simulated", entry["msg"])
	assert.EqualValues(t, 16, entry["months"])
}

func TestNew_BadFileOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
