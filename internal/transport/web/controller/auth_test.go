package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/datasources/mocks"
	"github.com/newsdeck/newsdeck/internal/domain"
)

func TestRegister_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		body         string
		createErr    error
		wantStatus   int
		wantErrField string
		skipCreate   bool
	}{
		{
			name:       "successful_registration",
			body:       `{"name":"Ada","email":"ada@example.com","password":"longenough"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "missing_name",
			body:         `{"email":"ada@example.com","password":"longenough"}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantErrField: "name",
			skipCreate:   true,
		},
		{
			name:         "invalid_email",
			body:         `{"name":"Ada","email":"not-an-email","password":"longenough"}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantErrField: "email",
			skipCreate:   true,
		},
		{
			name:         "short_password",
			body:         `{"name":"Ada","email":"ada@example.com","password":"short"}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantErrField: "password",
			skipCreate:   true,
		},
		{
			name:         "duplicate_email",
			body:         `{"name":"Ada","email":"ada@example.com","password":"longenough"}`,
			createErr:    domain.ErrEmailTaken,
			wantStatus:   http.StatusUnprocessableEntity,
			wantErrField: "email",
		},
		{
			name:       "malformed_body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			skipCreate: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userCreator := &mocks.UserCreator{}
			tokenCreator := &mocks.AuthTokenCreator{}

			if !tc.skipCreate {
				userCreator.On("CreateUser", mock.Anything, mock.AnythingOfType("domain.User")).
					Return(tc.createErr).Once()
			}
			if tc.wantStatus == http.StatusCreated {
				tokenCreator.On("CreateAuthToken", mock.Anything, mock.AnythingOfType("domain.AuthToken")).
					Return(nil).Once()
			}

			handler := Register{Command: command.NewRegisterUser(userCreator, tokenCreator)}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tc.body))
			req = testContext()(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body struct {
				Status string            `json:"status"`
				Errors map[string][]string `json:"errors"`
				Data   struct {
					User  domain.User `json:"user"`
					Token struct {
						Token string `json:"token"`
					} `json:"token"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			if tc.wantStatus == http.StatusCreated {
				assert.Equal(t, "success", body.Status)
				assert.Equal(t, "ada@example.com", body.Data.User.Email)
				assert.True(t, strings.HasPrefix(body.Data.Token.Token, command.AuthTokenPrefix))
			} else {
				assert.Equal(t, "error", body.Status)
				if tc.wantErrField != "" {
					assert.Contains(t, body.Errors, tc.wantErrField)
				}
			}
			userCreator.AssertExpectations(t)
		})
	}
}

func TestLogin_ServeHTTP_InvalidCredentials(t *testing.T) {
	userFetcher := &mocks.UserByEmailGetter{}
	tokenCreator := &mocks.AuthTokenCreator{}

	userFetcher.On("GetUserByEmail", mock.Anything, "nobody@example.com").
		Return(domain.User{}, domain.ErrUserNotFound).Once()

	handler := Login{Command: command.NewLoginUser(userFetcher, tokenCreator)}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
	req = testContext()(req)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	userFetcher.AssertExpectations(t)
}

func TestLogout_ServeHTTP(t *testing.T) {
	revoker := &mocks.AuthTokenRevoker{}
	revoker.On("RevokeAuthToken", mock.Anything, "token-1").Return(nil).Once()

	handler := Logout{Command: &command.LogoutUser{Revoker: revoker}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = testContextWithUserID("user-1")(req)
	req = req.WithContext(domain.ContextWithTokenID(req.Context(), "token-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	revoker.AssertExpectations(t)
}
