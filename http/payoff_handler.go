package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"debt-planner/domain"
	"debt-planner/service"
)

const defaultMaxBodySize int64 = 1 << 20

// PayoffService is the part of service.DebtPayoffService the handler uses.
type PayoffService interface {
	CalculatePayoffPlan(ctx context.Context, input domain.PayoffInput) (domain.PayoffResult, error)
	CompareStrategies(ctx context.Context, input domain.PayoffInput) (domain.StrategyComparison, error)
	SuggestedRate(category domain.DebtCategory) (float64, error)
}

type PayoffHandler struct {
	service     PayoffService
	logger      *zap.Logger
	maxBodySize int64
}

type errorResponse struct {
	Error  string              `json:"error,omitempty"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

type suggestedRateResponse struct {
	Category domain.DebtCategory `json:"category"`
	Rate     float64             `json:"rate"`
}

func NewPayoffHandler(service PayoffService, logger *zap.Logger, maxBodySize int64) *PayoffHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	return &PayoffHandler{
		service:     service,
		logger:      logger.Named("payoff_handler"),
		maxBodySize: maxBodySize,
	}
}

func (h *PayoffHandler) CalculatePayoffPlan(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	result, err := h.service.CalculatePayoffPlan(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *PayoffHandler) CompareStrategies(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	comparison, err := h.service.CompareStrategies(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, comparison)
}

func (h *PayoffHandler) SuggestedRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := domain.DebtCategory(r.URL.Query().Get("category"))
	if category == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "category is required"})
		return
	}

	rate, err := h.service.SuggestedRate(category)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, suggestedRateResponse{Category: category, Rate: rate})
}

// decodeInput checks method and content type and decodes the body. It
// writes the error response itself and reports false on failure.
func (h *PayoffHandler) decodeInput(w http.ResponseWriter, r *http.Request) (domain.PayoffInput, bool) {
	var input domain.PayoffInput

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return input, false
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return input, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("error decoding request body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return input, false
		}
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return input, false
	}
	return input, true
}

func (h *PayoffHandler) writeError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Errors: verrs})
	case errors.Is(err, service.ErrUnknownCategory):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("error computing payoff plan", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeJSON encodes into a buffer first so a failed encode never leaves
// a half-written 200.
func (h *PayoffHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing response", zap.Error(err))
	}
}
