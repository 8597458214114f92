package cryptox

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KDF is a salted key-derivation function. Implementations must be
// deterministic for a given secret and salt, and safe for concurrent use.
type KDF interface {
	Derive(secret, salt []byte) []byte
	Name() string
}

// PBKDF2 derives keys with PBKDF2-HMAC-SHA256.
type PBKDF2 struct {
	Iterations int
	KeyLength  int
}

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLength  = 32
)

// DefaultPBKDF2 returns PBKDF2-HMAC-SHA256 with 100,000 iterations and a
// 256-bit output.
func DefaultPBKDF2() PBKDF2 {
	return PBKDF2{Iterations: pbkdf2Iterations, KeyLength: pbkdf2KeyLength}
}

func (k PBKDF2) Derive(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, k.Iterations, k.KeyLength, sha256.New)
}

func (k PBKDF2) Name() string { return "pbkdf2" }

// Argon2ID derives keys with Argon2id. Each derivation costs Memory KiB, so
// only pair it with a very small pepper space.
type Argon2ID struct {
	Time      uint32
	Memory    uint32
	Threads   uint8
	KeyLength uint32
}

// OWASP-recommended minimum Argon2id parameters.
const (
	argonMemory      = 19 * 1024 // 19 MiB
	argonIterations  = 2
	argonParallelism = 1
	argonKeyLength   = 32
)

// DefaultArgon2ID returns Argon2id with 19 MiB, t=2, p=1 and a 256-bit output.
func DefaultArgon2ID() Argon2ID {
	return Argon2ID{
		Time:      argonIterations,
		Memory:    argonMemory,
		Threads:   argonParallelism,
		KeyLength: argonKeyLength,
	}
}

func (k Argon2ID) Derive(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, k.Time, k.Memory, k.Threads, k.KeyLength)
}

func (k Argon2ID) Name() string { return "argon2id" }

// KDFByName resolves a configured KDF name. An empty name selects PBKDF2.
func KDFByName(name string) (KDF, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pbkdf2":
		return DefaultPBKDF2(), nil
	case "argon2id":
		return DefaultArgon2ID(), nil
	default:
		return nil, fmt.Errorf("cryptox: unknown kdf %q", name)
	}
}
