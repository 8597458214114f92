package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeNoSuchMethod       = "no_such_auth_method"
	ErrorCodeIdentityMismatch   = "identity_mismatch"
	ErrorCodeAlreadyRegistered  = "already_registered"
	ErrorCodeRefreshNotFound    = "refresh_token_not_found"
	ErrorCodeRefreshExpired     = "refresh_token_expired"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body every endpoint returns. The server writes it
// with WriteError; the client decodes failed responses into it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by code, so callers can write
// errors.Is(err, authsdk.ErrInvalidCredentials).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when the access token is missing, invalid or expired.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user not found",
	}

	// ErrNoSuchMethod is returned when the user exists but never registered
	// with the provider used to log in.
	ErrNoSuchMethod = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeNoSuchMethod,
		Description: "user has no auth method for this provider",
	}

	ErrIdentityMismatch = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeIdentityMismatch,
		Description: "identity does not match the registered account",
	}

	ErrAlreadyRegistered = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyRegistered,
		Description: "a user with this email already exists",
	}

	ErrRefreshNotFound = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeRefreshNotFound,
		Description: "refresh token is unknown or already used",
	}

	ErrRefreshExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeRefreshExpired,
		Description: "refresh token has expired",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}
)

// NewAPIError creates an APIError with a custom status, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError. Returns nil
// for success statuses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
