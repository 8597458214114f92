package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
)

const (
	// RefreshCookieName carries the refresh id between login, refresh and logout.
	RefreshCookieName = "refresh_token"
	refreshCookiePath = "/v1/auth"
)

// CookieConfig controls the refresh cookie attributes.
type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) set(w http.ResponseWriter, t domain.RefreshToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    t.ID,
		Path:     refreshCookiePath,
		Expires:  t.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// writeTokens sends a freshly issued pair: JSON body, refresh cookie and the
// access token in the Authorization response header.
func (c CookieConfig) writeTokens(w http.ResponseWriter, res domain.TokenIssuingResult, now time.Time) {
	c.set(w, res.RefreshToken)
	w.Header().Set("Authorization", "Bearer "+res.AccessToken)

	expiresIn := int(res.AccessTokenExpiresAt.Sub(now).Seconds())
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken:      res.AccessToken,
		TokenType:        "Bearer",
		ExpiresIn:        max(expiresIn, 0),
		ExpiresAt:        res.AccessTokenExpiresAt,
		RefreshToken:     res.RefreshToken.ID,
		RefreshExpiresAt: res.RefreshToken.ExpiresAt,
	})
}

// refreshTokenFrom prefers the JSON body and falls back to the cookie. An
// empty body is allowed.
func refreshTokenFrom(w http.ResponseWriter, r *http.Request) (string, error) {
	var req authsdk.RefreshRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			return "", err
		}
	}
	if req.RefreshToken != "" {
		return req.RefreshToken, nil
	}
	if c, err := r.Cookie(RefreshCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errMissingRefreshToken
}

type TokenHandler struct {
	TokenService *service.TokenService
	Cookies      CookieConfig
	Now          func() time.Time
}

// HandleRefresh rotates a refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new access/refresh pair. The refresh token is read from the
//	@Description	JSON body or, when absent, from the refresh_token cookie. Each refresh token works once.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	false	"Refresh token (optional when the cookie is sent)"
//	@Success		200		{object}	authsdk.TokenResponse	"New token pair"
//	@Failure		400		{object}	authsdk.APIError		"No refresh token supplied"
//	@Failure		401		{object}	authsdk.APIError		"Refresh token unknown, used or expired"
//	@Failure		500		{object}	authsdk.APIError		"Internal server error"
//	@Router			/v1/auth/refresh [post].
func (h *TokenHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	id, err := refreshTokenFrom(w, r)
	if err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.TokenService.RefreshTokens(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "refresh", err)
		return
	}
	h.Cookies.writeTokens(w, res, nowOr(h.Now))
}

// HandleLogout revokes the refresh token and clears the cookie.
//
//	@Summary		Log out
//	@Description	Removes the refresh token from the token store and clears the refresh_token cookie.
//	@Description	Unknown refresh tokens are not an error.
//	@Tags			Tokens
//	@Accept			json
//	@Param			request	body	authsdk.RefreshRequest	false	"Refresh token (optional when the cookie is sent)"
//	@Success		204		"Logged out"
//	@Failure		400		{object}	authsdk.APIError	"No refresh token supplied"
//	@Failure		500		{object}	authsdk.APIError	"Internal server error"
//	@Router			/v1/auth/logout [post].
func (h *TokenHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, err := refreshTokenFrom(w, r)
	if err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TokenService.RevokeRefreshToken(r.Context(), id); err != nil {
		writeServiceError(w, r, "logout", err)
		return
	}
	h.Cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
