package command

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// AuthTokenPrefix marks newsdeck-issued bearer tokens in the
// Authorization header.
const AuthTokenPrefix = "nd_api|"

// AuthTokenTTL is how long an issued token stays valid without a refresh.
const AuthTokenTTL = 30 * 24 * time.Hour

// IssuedToken is a freshly minted bearer token. FullToken is the only copy
// of the plaintext; callers must hand it to the user immediately.
type IssuedToken struct {
	TokenID   string
	FullToken string
	ExpiresAt time.Time
}

// issueAuthToken generates an opaque random token, stores its SHA-256 hash,
// and returns the plaintext once.
func issueAuthToken(ctx context.Context, creator datasources.AuthTokenCreator, userID string) (IssuedToken, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return IssuedToken{}, fmt.Errorf("generating random token: %w", err)
	}

	tokenHex := hex.EncodeToString(tokenBytes)
	fullToken := AuthTokenPrefix + tokenHex

	hash := sha256.Sum256([]byte(fullToken))

	now := time.Now()
	token := domain.AuthToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: hex.EncodeToString(hash[:]),
		Prefix:    tokenHex[:8],
		ExpiresAt: now.Add(AuthTokenTTL),
		CreatedAt: now,
	}

	if err := creator.CreateAuthToken(ctx, token); err != nil {
		return IssuedToken{}, fmt.Errorf("storing token: %w", err)
	}

	return IssuedToken{
		TokenID:   token.ID,
		FullToken: fullToken,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// HashToken computes the stored hash for a presented bearer token.
func HashToken(fullToken string) string {
	hash := sha256.Sum256([]byte(fullToken))
	return hex.EncodeToString(hash[:])
}
