package command

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// ErrInvalidCredentials is returned for a bad email or password. The two
// cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginUserRequest struct {
	Email    string
	Password string
}

type LoginUserResponse struct {
	User  domain.User
	Token IssuedToken
}

type LoginUser struct {
	UserFetcher  datasources.UserByEmailGetter
	TokenCreator datasources.AuthTokenCreator
}

func NewLoginUser(
	userFetcher datasources.UserByEmailGetter,
	tokenCreator datasources.AuthTokenCreator,
) *LoginUser {
	return &LoginUser{
		UserFetcher:  userFetcher,
		TokenCreator: tokenCreator,
	}
}

func (c *LoginUser) Execute(ctx context.Context, req LoginUserRequest) (LoginUserResponse, error) {
	user, err := c.UserFetcher.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return LoginUserResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginUserResponse{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginUserResponse{}, ErrInvalidCredentials
	}

	token, err := issueAuthToken(ctx, c.TokenCreator, user.ID)
	if err != nil {
		return LoginUserResponse{}, err
	}

	return LoginUserResponse{User: user, Token: token}, nil
}
