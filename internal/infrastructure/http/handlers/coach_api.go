// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/forkcast/forkcast/internal/infrastructure/monitoring"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/forkcast/forkcast/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CoachHandlers handles coach REST API requests
type CoachHandlers struct {
	coachService inbound.CoachService
	events       outbound.EventRepository
	metrics      *monitoring.Metrics
	validate     *validator.Validate
	version      string
	logger       *zap.Logger
}

// NewCoachHandlers creates a new coach handlers instance
func NewCoachHandlers(
	coachService inbound.CoachService,
	events outbound.EventRepository,
	metrics *monitoring.Metrics,
	version string,
	logger *zap.Logger,
) *CoachHandlers {
	return &CoachHandlers{
		coachService: coachService,
		events:       events,
		metrics:      metrics,
		validate:     validator.New(),
		version:      version,
		logger:       logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HandleMessage handles POST /api/v1/coach/message
func (h *CoachHandlers) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RankCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, errors.NewAppError(errors.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		h.writeError(w, errors.NewAppError(errors.CodeValidationFailed, "Validation failed", err.Error()))
		return
	}

	result, err := h.coachService.Rank(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Ranking failed",
			zap.String("user_id", cmd.UserID),
			zap.Error(err),
		)
		h.writeError(w, err)
		return
	}

	h.metrics.RecordRank(string(result.Tone))

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

// HandleFeedback handles POST /api/v1/coach/feedback
func (h *CoachHandlers) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.FeedbackCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, errors.NewAppError(errors.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		h.writeError(w, errors.NewAppError(errors.CodeValidationFailed, "Validation failed", err.Error()))
		return
	}

	if err := h.coachService.RecordFeedback(r.Context(), cmd); err != nil {
		h.logger.Error("Feedback failed",
			zap.String("user_id", cmd.UserID),
			zap.Error(err),
		)
		h.writeError(w, err)
		return
	}

	h.metrics.RecordFeedback()

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Feedback recorded successfully",
	})
}

// HandleHistory handles GET /api/v1/coach/users/{userID}/events
func (h *CoachHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.writeError(w, errors.NewAppError(errors.CodeBadRequest, "Missing user ID", ""))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.writeError(w, errors.NewAppError(errors.CodeBadRequest, "Invalid limit", "limit must be between 1 and 500"))
			return
		}
		limit = parsed
	}

	events, err := h.events.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Event history lookup failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		h.writeError(w, errors.NewDatabaseError("list user events", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    events,
	})
}

// HealthCheck handles GET /health
func (h *CoachHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
		Message: "Service is healthy",
	})
}

// writeJSON writes a JSON response
func (h *CoachHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error to its HTTP status and standard envelope
func (h *CoachHandlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	if appErr, ok := err.(*errors.AppError); ok {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}
