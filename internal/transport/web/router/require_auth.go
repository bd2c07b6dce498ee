package router

import (
	"encoding/json"
	"net/http"

	"github.com/newsdeck/newsdeck/internal/domain"
)

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	body := struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{Status: "error", Message: message}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := domain.LoggerFromContext(r.Context())
		logger.ErrorContext(r.Context(), "unable to write unauthorized response", "error", err)
	}
}

func requireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := domain.UserIDFromContext(r.Context())
		if userID == "" {
			logger := domain.LoggerFromContext(r.Context())
			logger.ErrorContext(r.Context(), "attempt to use endpoint requiring auth without user ID")
			writeUnauthorized(w, r, "unauthenticated")
			return
		}

		next.ServeHTTP(w, r)
	})
}
