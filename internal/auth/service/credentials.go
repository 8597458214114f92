package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
	"github.com/aussiebroadwan/pepperauth/pkg/idx"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered  = errors.New("already_registered")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrNoSuchMethod       = errors.New("no_such_auth_method")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrIdentityMismatch   = errors.New("identity_mismatch")
	ErrInvalidInput       = errors.New("invalid_input")
	ErrUnknownProvider    = errors.New("unknown_provider")
)

// CredentialManager registers and authenticates users for one provider.
// The credential is a password for the local provider and the provider's
// subject id for federated ones.
type CredentialManager interface {
	Provider() domain.Provider

	// Register creates a new user owning a single auth method for this
	// provider. Fails with ErrAlreadyRegistered if the email is taken.
	Register(ctx context.Context, name, email, credential string, role domain.Role) (domain.User, error)

	// Login returns the id of the user the credential belongs to.
	Login(ctx context.Context, email, credential string) (string, error)
}

// Credentials selects a CredentialManager by provider.
type Credentials struct {
	managers map[domain.Provider]CredentialManager
}

func NewCredentials(managers ...CredentialManager) *Credentials {
	c := &Credentials{managers: make(map[domain.Provider]CredentialManager, len(managers))}
	for _, m := range managers {
		c.managers[m.Provider()] = m
	}
	return c
}

// For returns the manager for p, or ErrUnknownProvider.
func (c *Credentials) For(p domain.Provider) (CredentialManager, error) {
	m, ok := c.managers[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return m, nil
}

// LocalCredentials authenticates with a password hashed by a PasswordCipher.
type LocalCredentials struct {
	Users  store.Users
	Cipher *cryptox.PasswordCipher
	Now    func() time.Time
}

func (c *LocalCredentials) Provider() domain.Provider { return domain.ProviderLocal }

func (c *LocalCredentials) Register(
	ctx context.Context,
	name, email, password string,
	role domain.Role,
) (domain.User, error) {
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if err := ensureEmailFree(ctx, c.Users, email); err != nil {
		return domain.User{}, err
	}

	hash, salt, err := c.Cipher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u := newUser(name, email, role, nowOr(c.Now))
	u.AuthMethods = []domain.AuthMethod{{
		ID:           idx.NewAt(u.CreatedAt).String(),
		UserID:       u.ID,
		Provider:     domain.ProviderLocal,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    u.CreatedAt,
	}}
	return insertUser(ctx, c.Users, u)
}

func (c *LocalCredentials) Login(ctx context.Context, email, password string) (string, error) {
	u, err := lookupUser(ctx, c.Users, email)
	if err != nil {
		return "", err
	}
	m, ok := u.Method(domain.ProviderLocal)
	if !ok {
		return "", ErrNoSuchMethod
	}

	// Verify cannot be interrupted once started.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !c.Cipher.Verify(password, m.PasswordHash, m.PasswordSalt) {
		slogx.FromContext(ctx).Info("password rejected", slog.String("user_id", u.ID))
		return "", ErrInvalidCredentials
	}
	return u.ID, nil
}

// FederatedCredentials trusts an identity already verified by an external
// provider and pins the account to the provider's subject id.
type FederatedCredentials struct {
	Users store.Users
	Kind  domain.Provider
	Now   func() time.Time
}

func (c *FederatedCredentials) Provider() domain.Provider { return c.Kind }

func (c *FederatedCredentials) Register(
	ctx context.Context,
	name, email, subject string,
	role domain.Role,
) (domain.User, error) {
	if subject == "" {
		return domain.User{}, fmt.Errorf("%w: provider subject is required", ErrInvalidInput)
	}
	if err := ensureEmailFree(ctx, c.Users, email); err != nil {
		return domain.User{}, err
	}

	u := newUser(name, email, role, nowOr(c.Now))
	u.AuthMethods = []domain.AuthMethod{{
		ID:              idx.NewAt(u.CreatedAt).String(),
		UserID:          u.ID,
		Provider:        c.Kind,
		ProviderSubject: subject,
		CreatedAt:       u.CreatedAt,
	}}
	return insertUser(ctx, c.Users, u)
}

func (c *FederatedCredentials) Login(ctx context.Context, email, subject string) (string, error) {
	u, err := lookupUser(ctx, c.Users, email)
	if err != nil {
		return "", err
	}
	m, ok := u.Method(c.Kind)
	if !ok {
		return "", ErrNoSuchMethod
	}
	if subject == "" || m.ProviderSubject != subject {
		slogx.FromContext(ctx).Warn("federated subject does not match stored identity",
			slog.String("user_id", u.ID),
			slog.String("provider", c.Kind.String()),
		)
		return "", ErrIdentityMismatch
	}
	return u.ID, nil
}

func newUser(name, email string, role domain.Role, now time.Time) domain.User {
	if role == "" {
		role = domain.RoleUser
	}
	return domain.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     domain.NormalizeEmail(email),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ensureEmailFree rejects an email that any user already holds, whatever
// providers that user has.
func ensureEmailFree(ctx context.Context, users store.Users, email string) error {
	if domain.NormalizeEmail(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	_, err := users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrAlreadyRegistered
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

func insertUser(ctx context.Context, users store.Users, u domain.User) (domain.User, error) {
	if err := users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrAlreadyRegistered
		}
		return domain.User{}, err
	}
	slogx.FromContext(ctx).Info("registered user",
		slog.String("user_id", u.ID),
		slog.String("provider", u.AuthMethods[0].Provider.String()),
	)
	return u, nil
}

func lookupUser(ctx context.Context, users store.Users, email string) (domain.User, error) {
	u, err := users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now()
}
