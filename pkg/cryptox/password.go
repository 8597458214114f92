package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
)

// SaltLength is the size in bytes of the random per-password salt.
const SaltLength = 16

var ErrEmptyPassword = errors.New("cryptox: password is empty")

// PasswordCipher hashes passwords with a per-password salt and a pepper drawn
// from a PepperSpace. The pepper is discarded after hashing; Verify recovers
// it by trying every candidate in the space.
//
// Verification is O(Space.Size()) KDF evaluations in the worst case. It stops
// at the first match, so its latency reveals which candidate matched and is
// not constant across guesses.
type PasswordCipher struct {
	space PepperSpace
	kdf   KDF
}

// NewPasswordCipher returns a cipher over space using kdf. A nil kdf selects
// DefaultPBKDF2.
func NewPasswordCipher(space PepperSpace, kdf KDF) *PasswordCipher {
	if kdf == nil {
		kdf = DefaultPBKDF2()
	}
	return &PasswordCipher{space: space, kdf: kdf}
}

// Space returns the pepper space searched by Verify.
func (c *PasswordCipher) Space() PepperSpace { return c.space }

// Hash derives a storable hash for password. Both return values are standard
// base64. The pepper used is not returned.
func (c *PasswordCipher) Hash(password string) (hash, salt string, err error) {
	if password == "" {
		return "", "", ErrEmptyPassword
	}

	saltBytes := make([]byte, SaltLength)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	pepper, err := c.space.Generate()
	if err != nil {
		return "", "", err
	}

	key := c.kdf.Derive([]byte(password+pepper), saltBytes)
	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(saltBytes), nil
}

// Verify reports whether password, combined with some pepper of the space,
// derives hash under salt. Empty or undecodable inputs return false without
// running the KDF.
func (c *PasswordCipher) Verify(password, hash, salt string) bool {
	if password == "" || hash == "" || salt == "" {
		return false
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil || len(saltBytes) == 0 {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(hash)
	if err != nil || len(expected) == 0 {
		return false
	}

	return c.space.Each(func(pepper string) bool {
		computed := c.kdf.Derive([]byte(password+pepper), saltBytes)
		return subtle.ConstantTimeCompare(computed, expected) == 1
	})
}
