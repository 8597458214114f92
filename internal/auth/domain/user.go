package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider identifies how a user proves their identity.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// Federated reports whether the provider is an external identity provider.
func (p Provider) Federated() bool { return p != ProviderLocal }

func (p Provider) String() string { return string(p) }

// ParseProvider maps a stored provider name back to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderLocal, ProviderGoogle:
		return p, nil
	default:
		return "", fmt.Errorf("domain: unknown provider %q", s)
	}
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole defaults an empty role to RoleUser.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

type User struct {
	ID          string // UUID, used as the access token subject
	Name        string
	Email       string // normalised, unique
	Role        Role
	AuthMethods []AuthMethod
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Method returns the user's auth method for provider, if any.
func (u User) Method(p Provider) (AuthMethod, bool) {
	for _, m := range u.AuthMethods {
		if m.Provider == p {
			return m, true
		}
	}
	return AuthMethod{}, false
}

// Validate checks the invariants a user must satisfy before it is stored.
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("domain: user id is required")
	}
	if u.Email == "" {
		return errors.New("domain: user email is required")
	}

	seen := make(map[Provider]struct{}, len(u.AuthMethods))
	for _, m := range u.AuthMethods {
		if _, dup := seen[m.Provider]; dup {
			return fmt.Errorf("domain: user has more than one %s auth method", m.Provider)
		}
		seen[m.Provider] = struct{}{}

		if m.UserID != "" && m.UserID != u.ID {
			return errors.New("domain: auth method belongs to another user")
		}
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AuthMethod links a user to one provider. Local methods carry the password
// hash and salt; federated methods carry the provider's subject id instead.
type AuthMethod struct {
	ID              string // ULID
	UserID          string
	Provider        Provider
	ProviderSubject string
	PasswordHash    string
	PasswordSalt    string
	CreatedAt       time.Time
}

func (m AuthMethod) Validate() error {
	switch {
	case m.Provider == "":
		return errors.New("domain: auth method provider is required")
	case !m.Provider.Federated():
		if m.PasswordHash == "" || m.PasswordSalt == "" {
			return errors.New("domain: local auth method requires password hash and salt")
		}
	default:
		if m.PasswordHash != "" || m.PasswordSalt != "" {
			return fmt.Errorf("domain: %s auth method must not carry a password", m.Provider)
		}
		if m.ProviderSubject == "" {
			return fmt.Errorf("domain: %s auth method requires a subject id", m.Provider)
		}
	}
	return nil
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
