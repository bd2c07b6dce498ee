package command

import (
	"context"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
)

type RefreshTokenRequest struct {
	UserID  string
	TokenID string
}

// RefreshToken rotates a bearer token: the presented token is revoked and a
// fresh one issued in its place.
type RefreshToken struct {
	Revoker datasources.AuthTokenRevoker
	Creator datasources.AuthTokenCreator
}

func NewRefreshToken(
	revoker datasources.AuthTokenRevoker,
	creator datasources.AuthTokenCreator,
) *RefreshToken {
	return &RefreshToken{Revoker: revoker, Creator: creator}
}

func (c *RefreshToken) Execute(ctx context.Context, req RefreshTokenRequest) (IssuedToken, error) {
	token, err := issueAuthToken(ctx, c.Creator, req.UserID)
	if err != nil {
		return IssuedToken{}, err
	}

	if err := c.Revoker.RevokeAuthToken(ctx, req.TokenID); err != nil {
		return IssuedToken{}, fmt.Errorf("revoking replaced token: %w", err)
	}

	return token, nil
}
