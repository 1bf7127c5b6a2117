package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "smartfinance/internal/errors"
)

type traceIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the id assigned by the request middleware, or a fresh one
// when the handler runs outside the router.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

type Writer struct {
	logger *zap.Logger
}

func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

func (wr *Writer) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		wr.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (wr *Writer) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (wr *Writer) ValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	wr.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// Error maps an application error to its HTTP status. Anything unrecognised
// is logged and reported as a 500 without leaking its text.
func (wr *Writer) Error(w http.ResponseWriter, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		wr.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		wr.writeError(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		wr.writeError(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		wr.writeError(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		wr.writeError(w, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		wr.writeError(w, traceID, http.StatusConflict, "DEADLOCK", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsExternalToolError(err); ok {
		wr.logger.Warn("external tool failed", zap.String("traceId", traceID), zap.Error(err))
		wr.writeError(w, traceID, http.StatusBadGateway, "EXTERNAL_TOOL_ERROR", err.Error(), nil)
		return
	}

	wr.logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	wr.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (wr *Writer) writeError(w http.ResponseWriter, traceID string, status int, code string, message string, details []apperrors.ValidationDetail) {
	wr.JSON(w, status, ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
