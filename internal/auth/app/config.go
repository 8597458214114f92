package app

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
)

// MinSecretBytes is the shortest HS256 secret accepted.
const MinSecretBytes = 32

type Config struct {
	Issuer   string   // Optional: iss claim (default: pepperauth)
	Audience []string // Optional: aud claim, comma separated (default: pepperauth)
	// Required: hex-encoded HMAC secret, at least MinSecretBytes once decoded
	Secret string

	AccessTokenLifetime  time.Duration // Optional: minutes (default: 15), negatives clamp to 0
	RefreshTokenLifetime time.Duration // Optional: days (default: 7), negatives clamp to 0

	PepperLetters string // Optional: pepper alphabet (default: 0123456789abcdef)
	PepperLength  int    // Optional: pepper length (default: 3)
	PasswordKDF   string // Optional: pbkdf2 or argon2id (default: pbkdf2)

	UserStore    string // Optional: sqlite, postgres or memory (default: sqlite)
	DatabaseFile string // Optional: SQLite database file (default: auth.db)
	DatabaseURL  string // Required when UserStore is postgres

	TokenStore  string // Optional: redis, sqlite or memory (default: memory)
	RedisURL    string // Required when TokenStore is redis
	RedisPrefix string // Optional: key prefix for refresh records (default: refresh:)

	GoogleClientID  string // Optional: enables the Google endpoints when set
	GoogleIssuerURL string // Optional: OIDC issuer for Google (default: https://accounts.google.com)

	CookieSecure bool // Optional: Secure attribute on the refresh cookie (default: true)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired refresh record sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("AUTH_JWT_ISSUER", "pepperauth"),
		Audience:             splitList(getEnvOrDefault("AUTH_JWT_AUDIENCE", "pepperauth")),
		Secret:               os.Getenv("AUTH_JWT_SECRET"),
		AccessTokenLifetime:  time.Duration(getEnvIntOrDefault("AUTH_ACCESS_TOKEN_LIFETIME_MINUTES", 15)) * time.Minute,
		RefreshTokenLifetime: time.Duration(getEnvIntOrDefault("AUTH_REFRESH_TOKEN_LIFETIME_DAYS", 7)) * 24 * time.Hour,
		PepperLetters:        getEnvOrDefault("AUTH_PEPPER_LETTERS", "0123456789abcdef"),
		PepperLength:         getEnvIntOrDefault("AUTH_PEPPER_LENGTH", 3),
		PasswordKDF:          getEnvOrDefault("AUTH_PASSWORD_KDF", "pbkdf2"),
		UserStore:            strings.ToLower(getEnvOrDefault("AUTH_USER_STORE", "sqlite")),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		DatabaseURL:          os.Getenv("AUTH_DATABASE_URL"),
		TokenStore:           strings.ToLower(getEnvOrDefault("AUTH_TOKEN_STORE", "memory")),
		RedisURL:             os.Getenv("AUTH_REDIS_URL"),
		RedisPrefix:          getEnvOrDefault("AUTH_REDIS_PREFIX", "refresh:"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleIssuerURL:      os.Getenv("GOOGLE_ISSUER_URL"),
		CookieSecure:         getEnvBoolOrDefault("AUTH_COOKIE_SECURE", true),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_JWT_ISSUER must not be empty"))
	}
	if len(c.Audience) == 0 {
		errs = append(errs, errors.New("AUTH_JWT_AUDIENCE must name at least one audience"))
	}
	if _, err := c.SecretBytes(); err != nil {
		errs = append(errs, err)
	}
	if _, err := cryptox.NewPepperSpace(c.PepperLetters, c.PepperLength); err != nil {
		errs = append(errs, fmt.Errorf("AUTH_PEPPER_LETTERS/AUTH_PEPPER_LENGTH: %w", err))
	}
	if _, err := cryptox.KDFByName(c.PasswordKDF); err != nil {
		errs = append(errs, fmt.Errorf("AUTH_PASSWORD_KDF: %w", err))
	}

	switch c.UserStore {
	case "sqlite", "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres user store"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_USER_STORE: unknown store %q", c.UserStore))
	}

	switch c.TokenStore {
	case "memory":
	case "sqlite":
		if c.UserStore != "sqlite" {
			errs = append(errs, errors.New("AUTH_TOKEN_STORE=sqlite requires AUTH_USER_STORE=sqlite"))
		}
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("AUTH_REDIS_URL is required for the redis token store"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_STORE: unknown store %q", c.TokenStore))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}

// SecretBytes decodes the hex secret.
func (c Config) SecretBytes() ([]byte, error) {
	if c.Secret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	b, err := hex.DecodeString(c.Secret)
	if err != nil {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be hex: %w", err)
	}
	if len(b) < MinSecretBytes {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must decode to at least %d bytes, got %d", MinSecretBytes, len(b))
	}
	return b, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
