package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	redisstore "github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTokenStore(t *testing.T) (*redisstore.TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ts := redisstore.NewTokenStore(client, "test:")
	t.Cleanup(func() { _ = ts.Close() })
	return ts, mr
}

func TestTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ts, mr := newTokenStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	rec := domain.RefreshToken{ID: "rt-1", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, ts.Store(ctx, rec))

	require.True(t, mr.Exists("test:rt-1"))
	require.InDelta(t, time.Hour.Seconds(), mr.TTL("test:rt-1").Seconds(), 5)

	got, err := ts.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestTokenStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	ts, _ := newTokenStore(t)
	now := time.Now()

	rec := domain.RefreshToken{ID: "rt-1", AccessToken: "first", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, ts.Store(ctx, rec))
	rec.AccessToken = "second"
	require.NoError(t, ts.Store(ctx, rec))

	got, err := ts.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.Equal(t, "second", got.AccessToken)
}

func TestTokenStore_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ts, mr := newTokenStore(t)
	now := time.Now()

	require.NoError(t, ts.Store(ctx, domain.RefreshToken{ID: "rt-1", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, ts.Remove(ctx, "rt-1"))
	require.NoError(t, ts.Remove(ctx, "rt-1"))
	require.NoError(t, ts.Remove(ctx, "never-existed"))
	require.False(t, mr.Exists("test:rt-1"))

	_, err := ts.Get(ctx, "rt-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokenStore_Expiry(t *testing.T) {
	ctx := context.Background()
	ts, mr := newTokenStore(t)
	now := time.Now()

	require.NoError(t, ts.Store(ctx, domain.RefreshToken{ID: "rt-1", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := ts.Get(ctx, "rt-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("already due records get the minimum ttl", func(t *testing.T) {
		require.NoError(t, ts.Store(ctx, domain.RefreshToken{ID: "rt-2", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}))
		mr.FastForward(time.Second)
		require.False(t, mr.Exists("test:rt-2"))
	})
}

func TestTokenStore_BadValues(t *testing.T) {
	ctx := context.Background()
	ts, mr := newTokenStore(t)

	require.NoError(t, mr.Set("test:garbage", "not json"))
	_, err := ts.Get(ctx, "garbage")
	require.ErrorIs(t, err, store.ErrDeserialize)

	require.NoError(t, mr.Set("test:moved", `{"id":"elsewhere","accessToken":"jwt","expiresAt":"2030-01-01T00:00:00Z"}`))
	_, err = ts.Get(ctx, "moved")
	require.ErrorIs(t, err, store.ErrCorrupt)

	require.ErrorIs(t, ts.Store(ctx, domain.RefreshToken{ID: "no-expiry", AccessToken: "jwt"}), store.ErrInvalidInput)
}

func TestTokenStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	ts, mr := newTokenStore(t)
	mr.Close()

	_, err := ts.Get(ctx, "rt-1")
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.ErrorIs(t, ts.Remove(ctx, "rt-1"), store.ErrUnavailable)
	require.ErrorIs(t, ts.Ping(ctx), store.ErrUnavailable)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	ts, err := redisstore.Open(context.Background(), "redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	defer ts.Close()
	require.NoError(t, ts.Ping(context.Background()))

	_, err = redisstore.Open(context.Background(), "not a url", "")
	require.Error(t, err)
}
