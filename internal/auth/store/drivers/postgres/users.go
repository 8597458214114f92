package postgres

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct {
	pool *pgxpool.Pool
}

const (
	selectUserByEmail = `
SELECT id::text, name, email, role, created_at, updated_at
FROM users
WHERE email = $1`

	selectAuthMethods = `
SELECT id, provider, COALESCE(provider_subject, ''), COALESCE(password_hash, ''), COALESCE(password_salt, ''), created_at
FROM auth_methods
WHERE user_id = $1
ORDER BY created_at, id`

	insertUser = `
INSERT INTO users (id, name, email, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	insertAuthMethod = `
INSERT INTO auth_methods (id, user_id, provider, provider_subject, password_hash, password_salt, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)`
)

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.pool.QueryRow(ctx, selectUserByEmail, domain.NormalizeEmail(email)).
		Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)

	rows, err := r.pool.Query(ctx, selectAuthMethods, uuid.MustParse(u.ID))
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m        domain.AuthMethod
			provider string
		)
		if err := rows.Scan(&m.ID, &provider, &m.ProviderSubject, &m.PasswordHash, &m.PasswordSalt, &m.CreatedAt); err != nil {
			return domain.User{}, err
		}
		if m.Provider, err = domain.ParseProvider(provider); err != nil {
			return domain.User{}, fmt.Errorf("%w: %w", store.ErrCorrupt, err)
		}
		m.UserID = u.ID
		u.AuthMethods = append(u.AuthMethods, m)
	}
	if err := rows.Err(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) InsertUser(ctx context.Context, u domain.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
	}
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return fmt.Errorf("%w: user id: %w", store.ErrInvalidInput, err)
	}
	u.Email = domain.NormalizeEmail(u.Email)

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertUser,
			id, u.Name, u.Email, string(u.Role), u.CreatedAt, u.UpdatedAt,
		); err != nil {
			return mapConstraint(err)
		}

		for _, m := range u.AuthMethods {
			if _, err := tx.Exec(ctx, insertAuthMethod,
				m.ID, id, m.Provider.String(), m.ProviderSubject, m.PasswordHash, m.PasswordSalt, m.CreatedAt,
			); err != nil {
				return mapConstraint(err)
			}
		}
		return nil
	})
}
