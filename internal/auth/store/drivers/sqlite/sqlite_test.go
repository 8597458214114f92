package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(id, email string, methods ...domain.AuthMethod) domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	for i := range methods {
		methods[i].UserID = id
		methods[i].CreatedAt = now
	}
	return domain.User{
		ID:          id,
		Name:        "Alice",
		Email:       email,
		Role:        domain.RoleUser,
		AuthMethods: methods,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestUsers_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	users := newStore(t).Users()

	u := newUser("u1", "Alice@Example.com",
		domain.AuthMethod{ID: "m1", Provider: domain.ProviderLocal, PasswordHash: "hash", PasswordSalt: "salt"},
		domain.AuthMethod{ID: "m2", Provider: domain.ProviderGoogle, ProviderSubject: "google-sub"},
	)
	require.NoError(t, users.InsertUser(ctx, u))

	got, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, domain.RoleUser, got.Role)
	require.Equal(t, u.CreatedAt, got.CreatedAt)
	require.Len(t, got.AuthMethods, 2)

	local, ok := got.Method(domain.ProviderLocal)
	require.True(t, ok)
	require.Equal(t, "hash", local.PasswordHash)
	require.Equal(t, "salt", local.PasswordSalt)
	require.Empty(t, local.ProviderSubject)

	google, ok := got.Method(domain.ProviderGoogle)
	require.True(t, ok)
	require.Equal(t, "google-sub", google.ProviderSubject)
	require.Empty(t, google.PasswordHash)
}

func TestUsers_NotFound(t *testing.T) {
	_, err := newStore(t).Users().GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_Conflicts(t *testing.T) {
	ctx := context.Background()
	users := newStore(t).Users()

	require.NoError(t, users.InsertUser(ctx, newUser("u1", "a@b.com",
		domain.AuthMethod{ID: "m1", Provider: domain.ProviderGoogle, ProviderSubject: "s1"})))

	t.Run("same email", func(t *testing.T) {
		err := users.InsertUser(ctx, newUser("u2", "A@B.com",
			domain.AuthMethod{ID: "m2", Provider: domain.ProviderGoogle, ProviderSubject: "s2"}))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("same auth method id rolls back the user", func(t *testing.T) {
		err := users.InsertUser(ctx, newUser("u3", "c@d.com",
			domain.AuthMethod{ID: "m1", Provider: domain.ProviderGoogle, ProviderSubject: "s3"}))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = users.GetUserByEmail(ctx, "c@d.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid user", func(t *testing.T) {
		err := users.InsertUser(ctx, newUser("u4", "e@f.com",
			domain.AuthMethod{ID: "m4", Provider: domain.ProviderLocal}))
		require.ErrorIs(t, err, store.ErrInvalidInput)
	})
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	tokens := newStore(t).Tokens()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rec := domain.RefreshToken{ID: "rt-1", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, tokens.Store(ctx, rec))

	got, err := tokens.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.Equal(t, rec, got)

	rec.AccessToken = "jwt-2"
	require.NoError(t, tokens.Store(ctx, rec))
	got, err = tokens.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.Equal(t, "jwt-2", got.AccessToken)

	require.NoError(t, tokens.Remove(ctx, "rt-1"))
	require.NoError(t, tokens.Remove(ctx, "rt-1"))
	_, err = tokens.Get(ctx, "rt-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, tokens.Store(ctx, domain.RefreshToken{ID: "x"}), store.ErrInvalidInput)
}

func TestTokenStore_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	tokens := newStore(t).Tokens()
	now := time.Now().UTC()

	require.NoError(t, tokens.Store(ctx, domain.RefreshToken{ID: "old", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, tokens.Store(ctx, domain.RefreshToken{ID: "new", AccessToken: "jwt", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))

	n, err := tokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = tokens.Get(ctx, "old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = tokens.Get(ctx, "new")
	require.NoError(t, err)
}

func TestMigrationsAreIdempotentOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Close())

	s, err = sqlite.NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}
