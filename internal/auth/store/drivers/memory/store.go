// Package memory provides in-process implementations of the store
// interfaces, used by tests and single-node development setups.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
)

// Store keeps users in a map keyed by normalised email.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{users: make(map[string]domain.User)}
}

func (s *Store) Users() store.Users             { return (*usersRepo)(s) }
func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type usersRepo Store

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *usersRepo) InsertUser(ctx context.Context, u domain.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
	}

	key := domain.NormalizeEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.users[key]; taken {
		return store.ErrAlreadyExists
	}
	for _, existing := range r.users {
		if existing.ID == u.ID {
			return store.ErrAlreadyExists
		}
	}

	u.Email = key
	r.users[key] = cloneUser(u)
	return nil
}

// cloneUser stops callers from mutating stored auth methods.
func cloneUser(u domain.User) domain.User {
	u.AuthMethods = slices.Clone(u.AuthMethods)
	return u
}
