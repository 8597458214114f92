package authsdk

import "time"

// ============================================================================
// Registration and Login
// ============================================================================

// RegisterLocalRequest is the body of POST /v1/auth/local/register.
type RegisterLocalRequest struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginLocalRequest is the body of POST /v1/auth/local/login.
type LoginLocalRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// GoogleRequest carries a Google ID token obtained by the client. Used by
// both /v1/auth/google/register and /v1/auth/google/login.
type GoogleRequest struct {
	IDToken string `json:"id_token"`
}

// RegisterResponse describes the user that was created.
type RegisterResponse struct {
	UserID   string `json:"user_id" example:"6f1c2a64-54a5-4c34-9bd0-3f2b0f6d9a51"`
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Role     string `json:"role" example:"user"`
	Provider string `json:"provider" example:"local"`
}

// ============================================================================
// Token Types
// ============================================================================

// RefreshRequest is the optional body of POST /v1/auth/refresh and
// /v1/auth/logout. The refresh_token cookie is used when the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenResponse is returned by every login and refresh.
type TokenResponse struct {
	// AccessToken is the signed JWT used as a Bearer credential
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// ExpiresAt is the absolute expiry of the access token
	ExpiresAt time.Time `json:"expires_at"`

	// RefreshToken is the opaque single-use refresh id
	RefreshToken string `json:"refresh_token"`

	// RefreshExpiresAt is the absolute expiry of the refresh token
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// ============================================================================
// User Types
// ============================================================================

// UserInfoResponse is returned by GET /v1/auth/userinfo.
type UserInfoResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each backing store as "ok" or "unavailable".
type HealthChecks struct {
	UserStore  string `json:"user_store"`
	TokenStore string `json:"token_store"`
}
