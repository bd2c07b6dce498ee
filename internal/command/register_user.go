package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

type RegisterUserRequest struct {
	Name     string
	Email    string
	Password string
}

type RegisterUserResponse struct {
	User  domain.User
	Token IssuedToken
}

// RegisterUser creates an account and signs the new user straight in.
type RegisterUser struct {
	UserCreator  datasources.UserCreator
	TokenCreator datasources.AuthTokenCreator
}

func NewRegisterUser(
	userCreator datasources.UserCreator,
	tokenCreator datasources.AuthTokenCreator,
) *RegisterUser {
	return &RegisterUser{
		UserCreator:  userCreator,
		TokenCreator: tokenCreator,
	}
}

func (c *RegisterUser) Execute(ctx context.Context, req RegisterUserRequest) (RegisterUserResponse, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterUserResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}

	if err := c.UserCreator.CreateUser(ctx, user); err != nil {
		return RegisterUserResponse{}, err
	}

	token, err := issueAuthToken(ctx, c.TokenCreator, user.ID)
	if err != nil {
		return RegisterUserResponse{}, err
	}

	return RegisterUserResponse{User: user, Token: token}, nil
}
