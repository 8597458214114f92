package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
)

// TokenStore is the reference refresh-record store. Records are kept in
// their serialised form so reads go through the same decoding as the redis
// driver. Expiry is enforced lazily by the caller at read time and actively
// by DeleteExpired.
type TokenStore struct {
	mu      sync.RWMutex
	entries map[string]tokenEntry
}

type tokenEntry struct {
	data      []byte
	expiresAt time.Time
}

var (
	_ store.TokenStore          = (*TokenStore)(nil)
	_ store.ExpiredTokenSweeper = (*TokenStore)(nil)
)

func NewTokenStore() *TokenStore {
	return &TokenStore{entries: make(map[string]tokenEntry)}
}

func (s *TokenStore) Get(ctx context.Context, id string) (domain.RefreshToken, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return domain.RefreshToken{}, store.ErrNotFound
	}
	return store.DecodeRefreshToken(id, e.data)
}

func (s *TokenStore) Store(ctx context.Context, t domain.RefreshToken) error {
	data, err := store.EncodeRefreshToken(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[t.ID] = tokenEntry{data: data, expiresAt: t.ExpiresAt}
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// DeleteExpired evicts every record whose expiry is before now and returns
// how many were removed.
func (s *TokenStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.entries {
		if e.expiresAt.Before(now) {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored records, expired or not.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Put stores raw bytes under id. It exists so tests can plant undecodable
// records.
func (s *TokenStore) Put(id string, data []byte, expiresAt time.Time) {
	s.mu.Lock()
	s.entries[id] = tokenEntry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *TokenStore) Ping(ctx context.Context) error { return ctx.Err() }
func (s *TokenStore) Close() error                   { return nil }
