package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
	"github.com/aussiebroadwan/pepperauth/pkg/jwtx"
)

// InitAuthKeys builds the HS256 signer and verifier from the configured
// secret. Both share one key; rotating it invalidates every access token
// in flight.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.HS256Signer, *jwtx.HS256Verifier, error) {
	secret, err := cfg.SecretBytes()
	if err != nil {
		return nil, nil, err
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(secret, cfg.Issuer, cfg.Audience)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	logger.Info("signing key loaded",
		"algorithm", "HS256",
		"issuer", cfg.Issuer,
		"audience", cfg.Audience,
	)
	return signer, verifier, nil
}

// InitPasswordCipher builds the password cipher from the pepper settings.
func InitPasswordCipher(cfg Config) (*cryptox.PasswordCipher, error) {
	space, err := cryptox.NewPepperSpace(cfg.PepperLetters, cfg.PepperLength)
	if err != nil {
		return nil, err
	}
	kdf, err := cryptox.KDFByName(cfg.PasswordKDF)
	if err != nil {
		return nil, err
	}
	return cryptox.NewPasswordCipher(space, kdf), nil
}
