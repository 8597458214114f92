package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func localUser(id, email string) domain.User {
	return domain.User{
		ID:    id,
		Name:  "Alice",
		Email: email,
		Role:  domain.RoleUser,
		AuthMethods: []domain.AuthMethod{{
			ID:           "m-" + id,
			UserID:       id,
			Provider:     domain.ProviderLocal,
			PasswordHash: "hash",
			PasswordSalt: "salt",
		}},
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()

	_, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, users.InsertUser(ctx, localUser("u1", "Alice@Example.com")))

	got, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "alice@example.com", got.Email)
	require.Len(t, got.AuthMethods, 1)

	t.Run("duplicate email", func(t *testing.T) {
		err := users.InsertUser(ctx, localUser("u2", "alice@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := users.InsertUser(ctx, localUser("u1", "bob@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("invalid user", func(t *testing.T) {
		err := users.InsertUser(ctx, domain.User{ID: "u3"})
		require.ErrorIs(t, err, store.ErrInvalidInput)
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		got.AuthMethods[0].PasswordHash = "tampered"
		again, err := users.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "hash", again.AuthMethods[0].PasswordHash)
	})
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	ts := memory.NewTokenStore()
	now := time.Now().UTC().Truncate(time.Second)

	rec := domain.RefreshToken{ID: "rt-1", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, ts.Store(ctx, rec))

	got, err := ts.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.Equal(t, rec, got)

	t.Run("store overwrites", func(t *testing.T) {
		updated := rec
		updated.AccessToken = "jwt-2"
		require.NoError(t, ts.Store(ctx, updated))

		got, err := ts.Get(ctx, "rt-1")
		require.NoError(t, err)
		require.Equal(t, "jwt-2", got.AccessToken)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, ts.Remove(ctx, "rt-1"))
		require.NoError(t, ts.Remove(ctx, "rt-1"))
		require.NoError(t, ts.Remove(ctx, "never-existed"))

		_, err := ts.Get(ctx, "rt-1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		require.ErrorIs(t, ts.Store(ctx, domain.RefreshToken{AccessToken: "jwt", ExpiresAt: now}), store.ErrInvalidInput)
	})

	t.Run("undecodable record", func(t *testing.T) {
		ts.Put("garbage", []byte("{nope"), now.Add(time.Hour))
		_, err := ts.Get(ctx, "garbage")
		require.ErrorIs(t, err, store.ErrDeserialize)

		ts.Put("other", []byte(`{"id":"someone-else","accessToken":"jwt","expiresAt":"2030-01-01T00:00:00Z"}`), now.Add(time.Hour))
		_, err = ts.Get(ctx, "other")
		require.ErrorIs(t, err, store.ErrCorrupt)
	})
}

func TestTokenStore_Expiry(t *testing.T) {
	ctx := context.Background()
	ts := memory.NewTokenStore()
	now := time.Now()

	stale := domain.RefreshToken{ID: "stale", AccessToken: "jwt", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	fresh := domain.RefreshToken{ID: "fresh", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, ts.Store(ctx, stale))
	require.NoError(t, ts.Store(ctx, fresh))

	// Stale records stay readable so the issuer can report them as expired.
	got, err := ts.Get(ctx, "stale")
	require.NoError(t, err)
	require.True(t, got.Expired(now))

	n, err := ts.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, ts.Len())

	_, err = ts.Get(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = ts.Get(ctx, "fresh")
	require.NoError(t, err)
}

func TestTokenStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	ts := memory.NewTokenStore()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%8))
			_ = ts.Store(ctx, domain.RefreshToken{ID: id, AccessToken: "jwt", ExpiresAt: exp})
			_, _ = ts.Get(ctx, id)
			_ = ts.Remove(ctx, id)
		}(i)
	}
	wg.Wait()
}
