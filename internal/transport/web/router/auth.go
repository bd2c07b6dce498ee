package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// AuthResult represents a successfully authenticated request.
type AuthResult struct {
	UserID  string
	TokenID string
}

// AuthValidator attempts to validate authentication from a request.
// Returns nil, nil if this validator doesn't apply (wrong auth type).
// Returns AuthResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(r *http.Request) (*AuthResult, error)

// NewAuthMiddleware creates a middleware that resolves the requesting user.
// Requests no validator matches pass through anonymous, keeping public
// endpoints reachable.
func NewAuthMiddleware(validators []AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				result, err := validate(r)
				if result == nil && err == nil {
					continue
				}

				if err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "authentication failed", "error", err)
					writeUnauthorized(w, r, err.Error())
					return
				}

				ctx := domain.ContextWithUserID(r.Context(), result.UserID)
				ctx = domain.ContextWithTokenID(ctx, result.TokenID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewBearerTokenValidator creates a validator for newsdeck bearer tokens.
// It asynchronously updates the token's last_used_at timestamp on successful
// validation; if the service restarts, updates buffered here are lost, which
// is tolerable for usage tracking.
func NewBearerTokenValidator(
	ctx context.Context,
	tokenGetter datasources.AuthTokenByHashGetter,
	lastUsedUpdater datasources.AuthTokenLastUsedUpdater,
) AuthValidator {
	updateChan := make(chan string, 100)
	go func() {
		for tokenID := range updateChan {
			updateErr := lastUsedUpdater.UpdateAuthTokenLastUsed(
				context.WithoutCancel(ctx), tokenID, time.Now())
			if updateErr != nil {
				logger := domain.LoggerFromContext(ctx).With("token", tokenID)
				logger.WarnContext(context.WithoutCancel(ctx),
					"failed to update last used time for token",
					"error", updateErr)
			}
		}
	}()

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer "+command.AuthTokenPrefix) {
			return nil, nil
		}

		fullToken := authHeader[len("Bearer "):]

		token, err := tokenGetter.GetAuthTokenByHash(r.Context(), command.HashToken(fullToken))
		if err != nil {
			return nil, fmt.Errorf("invalid token")
		}

		if !token.IsActive() {
			return nil, fmt.Errorf("token is revoked or expired")
		}

		select {
		case updateChan <- token.ID:
		default:
		}

		return &AuthResult{UserID: token.UserID, TokenID: token.ID}, nil
	}
}
