package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"
)

// Pinger is satisfied by both store.Store and store.TokenStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyzTimeout = 2 * time.Second

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the user store and the token store. Returns 503 with status "degraded" if either fails.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, users, tokens Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()
		log := slogx.FromContext(ctx)

		check := func(name string, p Pinger) string {
			if err := p.Ping(ctx); err != nil {
				log.Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
				return "unavailable"
			}
			return "ok"
		}

		checks := &authsdk.HealthChecks{
			UserStore:  check("user_store", users),
			TokenStore: check("token_store", tokens),
		}

		status, code := "ok", http.StatusOK
		if checks.UserStore != "ok" || checks.TokenStore != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
