package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/domain"
)

const minPasswordLength = 8

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authResponse struct {
	User  domain.User   `json:"user"`
	Token tokenResponse `json:"token"`
}

type Register struct {
	Command *command.RegisterUser
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Register) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	fieldErrors := map[string][]string{}
	if req.Name == "" {
		fieldErrors["name"] = append(fieldErrors["name"], "is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = append(fieldErrors["email"], "must be a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		fieldErrors["password"] = append(fieldErrors["password"], "must be at least 8 characters")
	}
	if len(fieldErrors) > 0 {
		writeValidationError(w, r, fieldErrors)
		return
	}

	res, err := c.Command.Execute(ctx, command.RegisterUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		writeValidationError(w, r, map[string][]string{"email": {"is already registered"}})
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to register user", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to register user")
		return
	}

	writeSuccess(w, r, http.StatusCreated, authResponse{
		User: res.User,
		Token: tokenResponse{
			Token:     res.Token.FullToken,
			ExpiresAt: res.Token.ExpiresAt,
		},
	})
}

type Login struct {
	Command *command.LoginUser
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Login) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := c.Command.Execute(ctx, command.LoginUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, command.ErrInvalidCredentials) {
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to log user in", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to log in")
		return
	}

	writeSuccess(w, r, http.StatusOK, authResponse{
		User: res.User,
		Token: tokenResponse{
			Token:     res.Token.FullToken,
			ExpiresAt: res.Token.ExpiresAt,
		},
	})
}

type Logout struct {
	Command *command.LogoutUser
}

func (c Logout) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	if _, err := c.Command.Execute(ctx, domain.TokenIDFromContext(ctx)); err != nil {
		logger.ErrorContext(ctx, "unable to log user out", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to log out")
		return
	}

	writeSuccess(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

type TokenRefresh struct {
	Command *command.RefreshToken
}

func (c TokenRefresh) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	token, err := c.Command.Execute(ctx, command.RefreshTokenRequest{
		UserID:  domain.UserIDFromContext(ctx),
		TokenID: domain.TokenIDFromContext(ctx),
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to refresh token", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to refresh token")
		return
	}

	writeSuccess(w, r, http.StatusOK, tokenResponse{
		Token:     token.FullToken,
		ExpiresAt: token.ExpiresAt,
	})
}
