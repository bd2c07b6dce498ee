package router

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/domain"
)

func testRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := domain.ContextWithLogger(req.Context(), slog.New(slog.DiscardHandler))
	return req.WithContext(ctx)
}

func TestAuthMiddleware_ValidatorFailureIsValidJSON(t *testing.T) {
	failing := AuthValidator(func(r *http.Request) (*AuthResult, error) {
		return nil, fmt.Errorf(`token "abc" rejected`)
	})

	handler := NewAuthMiddleware([]AuthValidator{failing})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, testRequest("/api/v1/preferences"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, `token "abc" rejected`, body.Message)
}

func TestRequireAuthMiddleware_AnonymousRejected(t *testing.T) {
	handler := requireAuthMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, testRequest("/api/v1/preferences"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "unauthenticated", body.Message)
}
