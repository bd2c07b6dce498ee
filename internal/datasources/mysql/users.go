package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ datasources.AuthRepository = (*Repository)(nil)

const mysqlErrDuplicateEntry = 1062

func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return fmt.Errorf("%w: %s", domain.ErrEmailTaken, user.Email)
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}

func (r *Repository) CreateAuthToken(ctx context.Context, token domain.AuthToken) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_tokens (id, user_id, token_hash, token_prefix, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		token.ID, token.UserID, token.TokenHash, token.Prefix, token.ExpiresAt, token.CreatedAt,
	); err != nil {
		return fmt.Errorf("creating auth token: %w", err)
	}
	return nil
}

func (r *Repository) GetAuthTokenByHash(ctx context.Context, tokenHash string) (domain.AuthToken, error) {
	var token domain.AuthToken
	var revokedAt, lastUsedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, token_prefix, expires_at, revoked_at, created_at, last_used_at
		 FROM auth_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.Prefix,
		&token.ExpiresAt, &revokedAt, &token.CreatedAt, &lastUsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AuthToken{}, domain.ErrTokenNotFound
	}
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("fetching auth token: %w", err)
	}

	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}
	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}
	return token, nil
}

func (r *Repository) RevokeAuthToken(ctx context.Context, tokenID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE auth_tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		time.Now(), tokenID,
	); err != nil {
		return fmt.Errorf("revoking auth token: %w", err)
	}
	return nil
}

func (r *Repository) UpdateAuthTokenLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE auth_tokens SET last_used_at = ? WHERE id = ?`, usedAt, tokenID,
	); err != nil {
		return fmt.Errorf("updating auth token last use: %w", err)
	}
	return nil
}
