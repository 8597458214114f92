package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/federation"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
	"github.com/aussiebroadwan/pepperauth/pkg/jwtx"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"

	_ "github.com/aussiebroadwan/pepperauth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	users  Pinger
	tokens Pinger

	TokenService *service.TokenService
	UserService  *service.UserService
	Credentials  *service.Credentials
	Cookies      CookieConfig

	// GoogleVerifier is optional. The /v1/auth/google routes are only
	// registered when it is set.
	GoogleVerifier federation.IDTokenVerifier
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	users, tokens Pinger,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		users:        users,
		tokens:       tokens,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLocal()
	r.registerGoogle()
	r.registerTokens()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pepperauth Authentication Service API
//	@version		0.1.0
//	@description	Email/password and Google sign-in issuing short-lived HS256 access tokens and
//	@description	single-use rotating refresh tokens.
//	@description
//	@description				Refresh tokens are returned in the body and as the HttpOnly refresh_token cookie.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/pepperauth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLocal() {
	h := &LocalHandler{
		Credentials:  r.Credentials,
		TokenService: r.TokenService,
		Cookies:      r.Cookies,
	}

	// Rate limited by IP + email to slow down password guessing
	r.Mux.Handle("POST /v1/auth/local/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/local/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
}

func (r *Router) registerGoogle() {
	if r.GoogleVerifier == nil {
		return
	}
	h := &GoogleHandler{
		Verifier:     r.GoogleVerifier,
		Credentials:  r.Credentials,
		TokenService: r.TokenService,
		Cookies:      r.Cookies,
	}

	// The email lives inside the ID token, so these can only be keyed by IP
	r.Mux.Handle("POST /v1/auth/google/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/google/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTokens() {
	h := &TokenHandler{
		TokenService: r.TokenService,
		Cookies:      r.Cookies,
	}

	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{UserService: r.UserService}

	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/auth/userinfo", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.users, r.tokens),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
