package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/pepperauth/internal/auth/federation"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"
)

var errMissingRefreshToken = errors.New("missing refresh token")

// writeServiceError maps a service or federation error onto its API error.
// Anything unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, errMissingRefreshToken):
		authsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrAlreadyRegistered):
		authsdk.ErrAlreadyRegistered.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrNoSuchMethod):
		authsdk.ErrNoSuchMethod.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrIdentityMismatch):
		authsdk.ErrIdentityMismatch.WriteError(w)
	case errors.Is(err, service.ErrRefreshNotFound):
		authsdk.ErrRefreshNotFound.WriteError(w)
	case errors.Is(err, service.ErrRefreshExpired):
		authsdk.ErrRefreshExpired.WriteError(w)
	case errors.Is(err, federation.ErrInvalidIDToken):
		authsdk.ErrInvalidToken.WithDescription("the id token is invalid or expired").WriteError(w)
	case errors.Is(err, federation.ErrEmailNotVerified):
		authsdk.ErrInvalidToken.WithDescription("the id token has no verified email").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}
