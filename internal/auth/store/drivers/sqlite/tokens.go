package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
)

// TokenStore keeps refresh records in the refresh_tokens table. Rows are
// keyed by the SHA-256 fingerprint of the id, so the bearer secret itself is
// never written to disk.
type TokenStore struct {
	db *sql.DB
}

var (
	_ store.TokenStore          = (*TokenStore)(nil)
	_ store.ExpiredTokenSweeper = (*TokenStore)(nil)
)

const (
	selectRefreshToken = `
SELECT access_token, created_at, expires_at
FROM refresh_tokens
WHERE token_hash = ?`

	upsertRefreshToken = `
INSERT INTO refresh_tokens (token_hash, access_token, created_at, expires_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (token_hash) DO UPDATE SET
	access_token = excluded.access_token,
	created_at   = excluded.created_at,
	expires_at   = excluded.expires_at`

	deleteRefreshToken  = `DELETE FROM refresh_tokens WHERE token_hash = ?`
	deleteExpiredTokens = `DELETE FROM refresh_tokens WHERE expires_at < ?`
)

func (s *TokenStore) Get(ctx context.Context, id string) (domain.RefreshToken, error) {
	var (
		access               string
		createdAt, expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, selectRefreshToken, cryptox.FingerprintToken(id)).
		Scan(&access, &createdAt, &expiresAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	t := domain.RefreshToken{
		ID:          id,
		AccessToken: access,
		CreatedAt:   fromMillis(createdAt),
		ExpiresAt:   fromMillis(expiresAt),
	}
	if err := store.ValidateRefreshToken(t); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("%w: %w", store.ErrCorrupt, err)
	}
	return t, nil
}

func (s *TokenStore) Store(ctx context.Context, t domain.RefreshToken) error {
	if err := store.ValidateRefreshToken(t); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, upsertRefreshToken,
		cryptox.FingerprintToken(t.ID), t.AccessToken, toMillis(t.CreatedAt), toMillis(t.ExpiresAt),
	)
	return err
}

func (s *TokenStore) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, deleteRefreshToken, cryptox.FingerprintToken(id))
	return err
}

func (s *TokenStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, deleteExpiredTokens, toMillis(now))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *TokenStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close is a no-op; the owning Store closes the shared database.
func (s *TokenStore) Close() error { return nil }
