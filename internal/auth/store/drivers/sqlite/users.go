package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

const (
	selectUserByEmail = `
SELECT id, name, email, role, created_at, updated_at
FROM users
WHERE email = ?`

	selectAuthMethods = `
SELECT id, provider, provider_subject, password_hash, password_salt, created_at
FROM auth_methods
WHERE user_id = ?
ORDER BY created_at, id`

	countUsersByEmailOrID = `SELECT COUNT(*) FROM users WHERE email = ? OR id = ?`

	insertUser = `
INSERT INTO users (id, name, email, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

	insertAuthMethod = `
INSERT INTO auth_methods (id, user_id, provider, provider_subject, password_hash, password_salt, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
)

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		u                    domain.User
		role                 string
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, selectUserByEmail, domain.NormalizeEmail(email)).
		Scan(&u.ID, &u.Name, &u.Email, &role, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)

	rows, err := r.db.QueryContext(ctx, selectAuthMethods, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m                   domain.AuthMethod
			provider            string
			subject, hash, salt sql.NullString
			methodCreatedAt     int64
		)
		if err := rows.Scan(&m.ID, &provider, &subject, &hash, &salt, &methodCreatedAt); err != nil {
			return domain.User{}, err
		}
		if m.Provider, err = domain.ParseProvider(provider); err != nil {
			return domain.User{}, fmt.Errorf("%w: %w", store.ErrCorrupt, err)
		}
		m.UserID = u.ID
		m.ProviderSubject = subject.String
		m.PasswordHash = hash.String
		m.PasswordSalt = salt.String
		m.CreatedAt = fromMillis(methodCreatedAt)
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
	u.Email = domain.NormalizeEmail(u.Email)

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, countUsersByEmailOrID, u.Email, u.ID).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return store.ErrAlreadyExists
		}

		if _, err := tx.ExecContext(ctx, insertUser,
			u.ID, u.Name, u.Email, string(u.Role), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
		); err != nil {
			return mapConstraint(err)
		}

		for _, m := range u.AuthMethods {
			if _, err := tx.ExecContext(ctx, insertAuthMethod,
				m.ID, u.ID, m.Provider.String(),
				nullString(m.ProviderSubject), nullString(m.PasswordHash), nullString(m.PasswordSalt),
				toMillis(m.CreatedAt),
			); err != nil {
				return mapConstraint(err)
			}
		}
		return nil
	})
}
