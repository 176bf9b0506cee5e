package repository

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const planKeyPrefix = "payoff:v1:"

// PlanKey derives a cache key from any JSON-serializable request. Map
// keys are sorted by encoding/json, so equal requests share a key.
func PlanKey(kind string, request any) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	return planKeyPrefix + kind + ":" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
