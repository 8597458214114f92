package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
)

// LocalHandler serves email/password registration and login.
type LocalHandler struct {
	Credentials  *service.Credentials
	TokenService *service.TokenService
	Cookies      CookieConfig
	Now          func() time.Time
}

// HandleRegister creates a user with a local password.
//
//	@Summary		Register with email and password
//	@Description	Creates a user whose password is stored as a peppered, salted hash.
//	@Description	Fails with 409 if any account already uses the email.
//	@Tags			Local
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterLocalRequest	true	"Name, email and password"
//	@Success		201		{object}	authsdk.RegisterResponse		"Created user"
//	@Failure		400		{object}	authsdk.APIError				"Malformed request or missing fields"
//	@Failure		409		{object}	authsdk.APIError				"Email already registered"
//	@Failure		429		{object}	authsdk.APIError				"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.APIError				"Internal server error"
//	@Router			/v1/auth/local/register [post].
func (h *LocalHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterLocalRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	m, err := h.Credentials.For(domain.ProviderLocal)
	if err != nil {
		writeServiceError(w, r, "local register", err)
		return
	}
	u, err := m.Register(r.Context(), req.Name, req.Email, req.Password, domain.RoleUser)
	if err != nil {
		writeServiceError(w, r, "local register", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, registerResponse(u, domain.ProviderLocal))
}

// HandleLogin checks a password and issues tokens.
//
//	@Summary		Log in with email and password
//	@Description	Verifies the password and returns an access token plus a single-use refresh token.
//	@Description	The refresh token is also set as the HttpOnly refresh_token cookie.
//	@Tags			Local
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginLocalRequest	true	"Email and password"
//	@Success		200		{object}	authsdk.TokenResponse		"Token pair"
//	@Failure		400		{object}	authsdk.APIError			"Malformed request, or the user has no password"
//	@Failure		401		{object}	authsdk.APIError			"Wrong password"
//	@Failure		404		{object}	authsdk.APIError			"Unknown email"
//	@Failure		429		{object}	authsdk.APIError			"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.APIError			"Internal server error"
//	@Router			/v1/auth/local/login [post].
func (h *LocalHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginLocalRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	m, err := h.Credentials.For(domain.ProviderLocal)
	if err != nil {
		writeServiceError(w, r, "local login", err)
		return
	}
	userID, err := m.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "local login", err)
		return
	}

	res, err := h.TokenService.IssueTokens(r.Context(), domain.NormalizeEmail(req.Email), userID)
	if err != nil {
		writeServiceError(w, r, "issue tokens", err)
		return
	}
	h.Cookies.writeTokens(w, res, nowOr(h.Now))
}

func registerResponse(u domain.User, p domain.Provider) authsdk.RegisterResponse {
	return authsdk.RegisterResponse{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Provider: p.String(),
	}
}
