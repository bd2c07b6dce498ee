package controller

import (
	"encoding/json"
	"net/http"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// envelope is the uniform response wrapper: every endpoint returns
// {"status": "success"|"error", ...}.
type envelope struct {
	Status  string              `json:"status"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeSuccess(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(envelope{Status: "success", Data: data}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(envelope{Status: "error", Message: message}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write error response", "error", err)
	}
}

// writeValidationError reports per-field failures with 422, the status
// clients expect for malformed but well-formed-JSON input.
func writeValidationError(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	if err := json.NewEncoder(w).Encode(envelope{
		Status:  "error",
		Message: "validation failed",
		Errors:  fieldErrors,
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write validation response", "error", err)
	}
}
