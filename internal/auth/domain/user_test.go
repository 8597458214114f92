package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	local := domain.AuthMethod{Provider: domain.ProviderLocal, PasswordHash: "h", PasswordSalt: "s"}
	google := domain.AuthMethod{Provider: domain.ProviderGoogle, ProviderSubject: "1234"}

	tests := []struct {
		name    string
		user    domain.User
		wantErr bool
	}{
		{"local only", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{local}}, false},
		{"local and google", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{local, google}}, false},
		{"missing id", domain.User{Email: "a@b.com"}, true},
		{"missing email", domain.User{ID: "u1"}, true},
		{"duplicate provider", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{google, google}}, true},
		{"local without salt", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{
			{Provider: domain.ProviderLocal, PasswordHash: "h"},
		}}, true},
		{"federated with password", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{
			{Provider: domain.ProviderGoogle, ProviderSubject: "1", PasswordHash: "h", PasswordSalt: "s"},
		}}, true},
		{"federated without subject", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{
			{Provider: domain.ProviderGoogle},
		}}, true},
		{"method of another user", domain.User{ID: "u1", Email: "a@b.com", AuthMethods: []domain.AuthMethod{
			{UserID: "u2", Provider: domain.ProviderGoogle, ProviderSubject: "1"},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUserMethod(t *testing.T) {
	u := domain.User{AuthMethods: []domain.AuthMethod{{Provider: domain.ProviderGoogle, ProviderSubject: "sub"}}}

	m, ok := u.Method(domain.ProviderGoogle)
	require.True(t, ok)
	require.Equal(t, "sub", m.ProviderSubject)

	_, ok = u.Method(domain.ProviderLocal)
	require.False(t, ok)
}

func TestParseProviderAndRole(t *testing.T) {
	p, err := domain.ParseProvider(" Google ")
	require.NoError(t, err)
	require.Equal(t, domain.ProviderGoogle, p)
	require.True(t, p.Federated())
	require.False(t, domain.ProviderLocal.Federated())

	_, err = domain.ParseProvider("facebook")
	require.Error(t, err)

	r, err := domain.ParseRole("")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, r)

	_, err = domain.ParseRole("root")
	require.Error(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	now := time.Now()
	require.False(t, domain.RefreshToken{ExpiresAt: now.Add(time.Second)}.Expired(now))
	require.False(t, domain.RefreshToken{ExpiresAt: now}.Expired(now))
	require.True(t, domain.RefreshToken{ExpiresAt: now.Add(-time.Second)}.Expired(now))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@b.com", domain.NormalizeEmail("  A@B.Com "))
}
