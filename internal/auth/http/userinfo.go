package http

import (
	"net/http"

	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user.
//
//	@Summary		Get user information
//	@Description	Returns the subject and email from the access token, plus the stored name and role.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfoResponse	"User information"
//	@Failure		401	{object}	authsdk.APIError			"Invalid or missing access token"
//	@Failure		404	{object}	authsdk.APIError			"User no longer exists"
//	@Failure		500	{object}	authsdk.APIError			"Internal server error"
//	@Router			/v1/auth/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		writeServiceError(w, r, "load user", err)
		return
	}
	// The email may have been reassigned since the token was minted.
	if user.ID != claims.Subject {
		authsdk.ErrUserNotFound.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		Sub:   claims.Subject,
		Email: claims.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	})
}
