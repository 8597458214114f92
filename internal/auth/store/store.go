package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrDeserialize means a stored value could not be decoded.
	ErrDeserialize = errors.New("store: cannot deserialize record")
	// ErrCorrupt means a stored value decoded but is not a valid record.
	ErrCorrupt      = errors.New("store: corrupt record")
	ErrSerialize    = errors.New("store: cannot serialize record")
	ErrInvalidInput = errors.New("store: invalid input")

	// ErrUnavailable wraps failures of the backing service itself.
	ErrUnavailable = errors.New("store: backing service unavailable")
)

// Store is the root user-data interface. Concrete drivers (sqlite, postgres,
// memory) implement it.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema up to date. No-op for memory.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Users is the only access the credential engine needs to user records.
type Users interface {
	// GetUserByEmail returns the user with its auth methods, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// InsertUser stores a user and its auth methods atomically. Fails with
	// ErrAlreadyExists if the email is taken.
	InsertUser(ctx context.Context, u domain.User) error
}

// TokenStore is an expiring key-value store of refresh records keyed by id.
// Every operation is atomic per key.
type TokenStore interface {
	// Get returns ErrNotFound, ErrDeserialize or ErrCorrupt on failure. A
	// record past its expiry may still be returned; callers check Expired.
	Get(ctx context.Context, id string) (domain.RefreshToken, error)

	// Store overwrites any record with the same id. Returns ErrInvalidInput
	// for records without an id or expiry, ErrSerialize if encoding fails.
	Store(ctx context.Context, t domain.RefreshToken) error

	// Remove is idempotent; a missing id is not an error.
	Remove(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

// ExpiredTokenSweeper is implemented by token stores that need active
// eviction instead of native key expiry.
type ExpiredTokenSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
