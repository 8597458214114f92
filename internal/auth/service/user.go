package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
)

type UserService struct {
	Users store.Users
}

// GetUserByEmail fetches a user and its auth methods.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}
