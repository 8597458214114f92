package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecretHex = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "pepperauth", cfg.Issuer)
	require.Equal(t, []string{"pepperauth"}, cfg.Audience)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenLifetime)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenLifetime)
	require.Equal(t, "0123456789abcdef", cfg.PepperLetters)
	require.Equal(t, 3, cfg.PepperLength)
	require.Equal(t, "sqlite", cfg.UserStore)
	require.Equal(t, "memory", cfg.TokenStore)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_ISSUER", "issuer-x")
	t.Setenv("AUTH_JWT_AUDIENCE", "web, mobile ,")
	t.Setenv("AUTH_JWT_SECRET", testSecretHex)
	t.Setenv("AUTH_ACCESS_TOKEN_LIFETIME_MINUTES", "5")
	t.Setenv("AUTH_REFRESH_TOKEN_LIFETIME_DAYS", "30")
	t.Setenv("AUTH_USER_STORE", "Postgres")
	t.Setenv("AUTH_DATABASE_URL", "postgres://localhost/auth")
	t.Setenv("AUTH_TOKEN_STORE", "redis")
	t.Setenv("AUTH_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AUTH_COOKIE_SECURE", "false")
	t.Setenv("HOUSEKEEPING_INTERVAL", "90")

	cfg := LoadConfig()
	require.Equal(t, "issuer-x", cfg.Issuer)
	require.Equal(t, []string{"web", "mobile"}, cfg.Audience)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenLifetime)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenLifetime)
	require.Equal(t, "postgres", cfg.UserStore)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 90*time.Minute, cfg.HousekeepingInterval)
	require.NoError(t, cfg.Validate())
}

func validConfig() Config {
	cfg := LoadConfig()
	cfg.Secret = testSecretHex
	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.Secret = "" }, "AUTH_JWT_SECRET is required"},
		{"secret not hex", func(c *Config) { c.Secret = "zz" }, "must be hex"},
		{"secret too short", func(c *Config) { c.Secret = "00112233" }, "at least 32 bytes"},
		{"empty audience", func(c *Config) { c.Audience = nil }, "AUTH_JWT_AUDIENCE"},
		{"empty pepper alphabet", func(c *Config) { c.PepperLetters = "" }, "AUTH_PEPPER_LETTERS"},
		{"unknown kdf", func(c *Config) { c.PasswordKDF = "md5" }, "AUTH_PASSWORD_KDF"},
		{"postgres without url", func(c *Config) { c.UserStore = "postgres" }, "AUTH_DATABASE_URL"},
		{"unknown user store", func(c *Config) { c.UserStore = "mongo" }, "AUTH_USER_STORE"},
		{"redis without url", func(c *Config) { c.TokenStore = "redis" }, "AUTH_REDIS_URL"},
		{"sqlite tokens with memory users", func(c *Config) {
			c.UserStore = "memory"
			c.TokenStore = "sqlite"
		}, "AUTH_TOKEN_STORE=sqlite"},
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.Secret = ""
		cfg.Port = -1
		err := cfg.Validate()
		require.Error(t, err)
		require.Equal(t, 2, strings.Count(err.Error(), "\n")+1)
	})
}
