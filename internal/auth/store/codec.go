package store

import (
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
)

// ValidateRefreshToken checks the fields every stored record must carry.
func ValidateRefreshToken(t domain.RefreshToken) error {
	switch {
	case t.ID == "":
		return fmt.Errorf("%w: refresh token id is empty", ErrInvalidInput)
	case t.AccessToken == "":
		return fmt.Errorf("%w: refresh token has no access token", ErrInvalidInput)
	case t.ExpiresAt.IsZero():
		return fmt.Errorf("%w: refresh token has no expiry", ErrInvalidInput)
	}
	return nil
}

// EncodeRefreshToken validates t and serialises it as JSON with the
// id, accessToken, createdAt and expiresAt fields.
func EncodeRefreshToken(t domain.RefreshToken) ([]byte, error) {
	if err := ValidateRefreshToken(t); err != nil {
		return nil, err
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return b, nil
}

// DecodeRefreshToken parses a record stored under id. Bytes that are not a
// JSON record yield ErrDeserialize; a record for another id, or one missing
// required fields, yields ErrCorrupt.
func DecodeRefreshToken(id string, data []byte) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := json.Unmarshal(data, &t); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	if t.ID != id {
		return domain.RefreshToken{}, fmt.Errorf("%w: stored id does not match key", ErrCorrupt)
	}
	if err := ValidateRefreshToken(t); err != nil {
		return domain.RefreshToken{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return t, nil
}
