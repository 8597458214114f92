// Package redis stores refresh records in Redis (or any protocol-compatible
// server such as Valkey or DragonflyDB) and relies on native key expiry.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces refresh records in a shared keyspace.
const DefaultPrefix = "pepperauth:refresh:"

// minTTL keeps SET from rejecting records that are already due.
const minTTL = time.Millisecond

type TokenStore struct {
	client redis.UniversalClient
	prefix string

	// Now is used to turn absolute expiries into key TTLs.
	Now func() time.Time
}

var _ store.TokenStore = (*TokenStore)(nil)

// NewTokenStore wraps an existing client. An empty prefix selects
// DefaultPrefix.
func NewTokenStore(client redis.UniversalClient, prefix string) *TokenStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &TokenStore{client: client, prefix: prefix, Now: time.Now}
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, url, prefix string) (*TokenStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	return NewTokenStore(client, prefix), nil
}

func (s *TokenStore) key(id string) string { return s.prefix + id }

func (s *TokenStore) Get(ctx context.Context, id string) (domain.RefreshToken, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RefreshToken{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return store.DecodeRefreshToken(id, data)
}

func (s *TokenStore) Store(ctx context.Context, t domain.RefreshToken) error {
	data, err := store.EncodeRefreshToken(t)
	if err != nil {
		return err
	}

	ttl := max(t.ExpiresAt.Sub(s.Now()), minTTL)
	if err := s.client.Set(ctx, s.key(t.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (s *TokenStore) Close() error { return s.client.Close() }
