package command

import (
	"context"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
)

// LogoutUser revokes the bearer token the request authenticated with.
type LogoutUser struct {
	Revoker datasources.AuthTokenRevoker
}

func (c *LogoutUser) Execute(ctx context.Context, tokenID string) (Empty, error) {
	if err := c.Revoker.RevokeAuthToken(ctx, tokenID); err != nil {
		return Empty{}, fmt.Errorf("revoking token: %w", err)
	}
	return Empty{}, nil
}
