package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// ContextWithLogger attaches a request- or job-scoped logger. Components
// receive their logger through context rather than process globals.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		logger = slog.Default()
	}

	return logger.(*slog.Logger)
}

const tokenContextKey contextKey = "token"

// ContextWithTokenID records which bearer token authenticated the request,
// so logout and refresh can act on that exact token.
func ContextWithTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, tokenContextKey, tokenID)
}

func TokenIDFromContext(ctx context.Context) string {
	tokenID := ctx.Value(tokenContextKey)
	if tokenID == nil {
		tokenID = ""
	}
	return tokenID.(string)
}

const userContextKey contextKey = "user"

// ContextWithUserID records the authenticated user for the request.
// An empty user ID means the request is anonymous.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

func UserIDFromContext(ctx context.Context) string {
	userID := ctx.Value(userContextKey)
	if userID == nil {
		userID = ""
	}
	return userID.(string)
}
