package datasources

import (
	"context"
	"time"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// UserCreator stores a new user. Fails on duplicate email.
type UserCreator interface {
	CreateUser(ctx context.Context, user domain.User) error
}

// UserByEmailGetter looks a user up for login.
type UserByEmailGetter interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// AuthTokenCreator stores a new bearer token record.
type AuthTokenCreator interface {
	CreateAuthToken(ctx context.Context, token domain.AuthToken) error
}

// AuthTokenByHashGetter retrieves a token record by the SHA-256 hash of the
// presented bearer token.
type AuthTokenByHashGetter interface {
	GetAuthTokenByHash(ctx context.Context, tokenHash string) (domain.AuthToken, error)
}

// AuthTokenRevoker marks a token revoked.
type AuthTokenRevoker interface {
	RevokeAuthToken(ctx context.Context, tokenID string) error
}

// AuthTokenLastUsedUpdater updates the last_used_at timestamp for a token.
type AuthTokenLastUsedUpdater interface {
	UpdateAuthTokenLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error
}

// AuthRepository combines the user and token operations the auth flows use.
type AuthRepository interface {
	UserCreator
	UserByEmailGetter
	AuthTokenCreator
	AuthTokenByHashGetter
	AuthTokenRevoker
	AuthTokenLastUsedUpdater
}
