package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/federation"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
)

// GoogleHandler registers and logs in users who present a Google ID token.
type GoogleHandler struct {
	Verifier     federation.IDTokenVerifier
	Credentials  *service.Credentials
	TokenService *service.TokenService
	Cookies      CookieConfig
	Now          func() time.Time
}

// identity decodes the request and verifies its ID token. It writes the
// error response itself and reports whether the caller may continue.
func (h *GoogleHandler) identity(w http.ResponseWriter, r *http.Request) (federation.Identity, service.CredentialManager, bool) {
	var req authsdk.GoogleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.IDToken == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return federation.Identity{}, nil, false
	}

	id, err := h.Verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeServiceError(w, r, "verify id token", err)
		return federation.Identity{}, nil, false
	}

	m, err := h.Credentials.For(domain.ProviderGoogle)
	if err != nil {
		writeServiceError(w, r, "google credentials", err)
		return federation.Identity{}, nil, false
	}
	return id, m, true
}

// HandleRegister creates a user linked to a Google account.
//
//	@Summary		Register with Google
//	@Description	Verifies a Google ID token and creates a user pinned to its subject id.
//	@Description	Fails with 409 if any account already uses the token's email.
//	@Tags			Google
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.GoogleRequest		true	"Google ID token"
//	@Success		201		{object}	authsdk.RegisterResponse	"Created user"
//	@Failure		400		{object}	authsdk.APIError			"Malformed request"
//	@Failure		401		{object}	authsdk.APIError			"ID token invalid or email not verified"
//	@Failure		409		{object}	authsdk.APIError			"Email already registered"
//	@Failure		500		{object}	authsdk.APIError			"Internal server error"
//	@Router			/v1/auth/google/register [post].
func (h *GoogleHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.identity(w, r)
	if !ok {
		return
	}

	u, err := m.Register(r.Context(), id.DisplayName(), id.Email, id.Subject, domain.RoleUser)
	if err != nil {
		writeServiceError(w, r, "google register", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, registerResponse(u, domain.ProviderGoogle))
}

// HandleLogin logs in a user previously registered with Google.
//
//	@Summary		Log in with Google
//	@Description	Verifies a Google ID token, checks its subject against the registered account and issues tokens.
//	@Tags			Google
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.GoogleRequest	true	"Google ID token"
//	@Success		200		{object}	authsdk.TokenResponse	"Token pair"
//	@Failure		400		{object}	authsdk.APIError		"Malformed request, or the user has no Google login"
//	@Failure		401		{object}	authsdk.APIError		"ID token invalid or subject mismatch"
//	@Failure		404		{object}	authsdk.APIError		"Unknown email"
//	@Failure		500		{object}	authsdk.APIError		"Internal server error"
//	@Router			/v1/auth/google/login [post].
func (h *GoogleHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.identity(w, r)
	if !ok {
		return
	}

	userID, err := m.Login(r.Context(), id.Email, id.Subject)
	if err != nil {
		writeServiceError(w, r, "google login", err)
		return
	}

	res, err := h.TokenService.IssueTokens(r.Context(), domain.NormalizeEmail(id.Email), userID)
	if err != nil {
		writeServiceError(w, r, "issue tokens", err)
		return
	}
	h.Cookies.writeTokens(w, res, nowOr(h.Now))
}
