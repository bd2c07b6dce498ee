package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdeck/newsdeck/internal/datasources/mocks"
	"github.com/newsdeck/newsdeck/internal/domain"
)

func TestRegisterUser_Execute(t *testing.T) {
	userCreator := &mocks.UserCreator{}
	tokenCreator := &mocks.AuthTokenCreator{}

	var storedUser domain.User
	userCreator.On("CreateUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { storedUser = args.Get(1).(domain.User) }).
		Return(nil).Once()

	var storedToken domain.AuthToken
	tokenCreator.On("CreateAuthToken", mock.Anything, mock.AnythingOfType("domain.AuthToken")).
		Run(func(args mock.Arguments) { storedToken = args.Get(1).(domain.AuthToken) }).
		Return(nil).Once()

	cmd := NewRegisterUser(userCreator, tokenCreator)
	res, err := cmd.Execute(context.Background(), RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	// The stored hash verifies against the password but is not the password.
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(storedUser.PasswordHash), []byte("correct horse battery staple")))
	assert.NotEqual(t, "correct horse battery staple", storedUser.PasswordHash)

	// Only the hash of the token is stored; the plaintext goes to the caller.
	assert.True(t, strings.HasPrefix(res.Token.FullToken, AuthTokenPrefix))
	assert.Equal(t, HashToken(res.Token.FullToken), storedToken.TokenHash)
	assert.NotContains(t, storedToken.TokenHash, res.Token.FullToken)
	assert.Equal(t, storedUser.ID, storedToken.UserID)

	userCreator.AssertExpectations(t)
	tokenCreator.AssertExpectations(t)
}

func TestLoginUser_Execute(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	user := domain.User{
		ID:           "user-1",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}

	cases := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{
			name:     "valid_credentials",
			email:    "ada@example.com",
			password: "hunter2hunter2",
			found:    true,
		},
		{
			name:     "wrong_password",
			email:    "ada@example.com",
			password: "wrong",
			found:    true,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown_email",
			email:    "nobody@example.com",
			password: "hunter2hunter2",
			found:    false,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userFetcher := &mocks.UserByEmailGetter{}
			tokenCreator := &mocks.AuthTokenCreator{}

			if tc.found {
				userFetcher.On("GetUserByEmail", mock.Anything, tc.email).Return(user, nil).Once()
			} else {
				userFetcher.On("GetUserByEmail", mock.Anything, tc.email).
					Return(domain.User{}, domain.ErrUserNotFound).Once()
			}
			if tc.wantErr == nil {
				tokenCreator.On("CreateAuthToken", mock.Anything, mock.AnythingOfType("domain.AuthToken")).
					Return(nil).Once()
			}

			cmd := NewLoginUser(userFetcher, tokenCreator)
			res, err := cmd.Execute(context.Background(), LoginUserRequest{
				Email:    tc.email,
				Password: tc.password,
			})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, res.User.ID)
			assert.NotEmpty(t, res.Token.FullToken)
			tokenCreator.AssertExpectations(t)
		})
	}
}

func TestRefreshToken_Execute(t *testing.T) {
	revoker := &mocks.AuthTokenRevoker{}
	creator := &mocks.AuthTokenCreator{}

	creator.On("CreateAuthToken", mock.Anything, mock.AnythingOfType("domain.AuthToken")).
		Return(nil).Once()
	revoker.On("RevokeAuthToken", mock.Anything, "old-token-id").Return(nil).Once()

	cmd := NewRefreshToken(revoker, creator)
	token, err := cmd.Execute(context.Background(), RefreshTokenRequest{
		UserID:  "user-1",
		TokenID: "old-token-id",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token.FullToken, AuthTokenPrefix))
	assert.WithinDuration(t, time.Now().Add(AuthTokenTTL), token.ExpiresAt, time.Minute)
	revoker.AssertExpectations(t)
	creator.AssertExpectations(t)
}
