package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// HS256Verifier validates tokens signed by an HS256Signer sharing the same
// secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	aud    []string

	// Now is the clock used for exp/nbf checks. Defaults to time.Now.
	Now func() time.Time
}

// NewVerifierHS256 creates a verifier expecting issuer and at least one of aud.
// Empty values disable the matching check.
func NewVerifierHS256(secret []byte, issuer string, aud []string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Verifier{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		aud:    aud,
		Now:    time.Now,
	}, nil
}

// Verify checks signature, issuer, audience, exp and nbf with zero leeway.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	claims, err := v.Parse(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now()); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Parse checks signature, issuer and audience but not the token's lifetime.
// The refresh flow uses it to recover the identity from an access token that
// may already have expired.
func (v *HS256Verifier) Parse(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (v *HS256Verifier) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// classify maps parser failures onto our sentinels, keeping the cause.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrAlgMismatch, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
