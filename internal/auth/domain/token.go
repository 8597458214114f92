package domain

import "time"

// RefreshToken is the stored refresh record. Its ID is the opaque bearer
// secret handed to the client; the record is single use.
type RefreshToken struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"accessToken"` // minted alongside, re-read on refresh
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the record's absolute expiry is before now.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// TokenIssuingResult is what a successful login or refresh hands back.
type TokenIssuingResult struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         RefreshToken
}
