package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/federation"
	httpapi "github.com/aussiebroadwan/pepperauth/internal/auth/http"
	"github.com/aussiebroadwan/pepperauth/internal/auth/service"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/memory"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
	"github.com/aussiebroadwan/pepperauth/pkg/jwtx"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	tokens   store.TokenStore
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier
	cipher   *cryptox.PasswordCipher
	google   federation.IDTokenVerifier

	// Services
	tokenService        *service.TokenService
	userService         *service.UserService
	credentials         *service.Credentials
	housekeepingService *service.HousekeepingService // nil when the token store expires keys itself

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initTokenStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initCrypto(ctx); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.tokens != nil {
		if err := app.tokens.Close(); err != nil {
			app.logger.Error("error closing token store", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the user store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	switch app.cfg.UserStore {
	case "postgres":
		db, err := postgres.NewStore(ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		app.db = db
	case "memory":
		app.db = memory.NewStore()
		app.logger.Warn("using in-memory user store, users are lost on restart")
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("user store ready", "driver", app.cfg.UserStore)
	return nil
}

// initTokenStore opens the refresh token store
func (app *Application) initTokenStore(ctx context.Context) error {
	switch app.cfg.TokenStore {
	case "redis":
		tokens, err := redis.Open(ctx, app.cfg.RedisURL, app.cfg.RedisPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.tokens = tokens
	case "sqlite":
		db, ok := app.db.(*sqlite.Store)
		if !ok {
			return errors.New("sqlite token store requires the sqlite user store")
		}
		app.tokens = db.Tokens()
	default:
		app.tokens = memory.NewTokenStore()
	}

	app.logger.Info("token store ready", "driver", app.cfg.TokenStore)
	return nil
}

// initCrypto loads the signing key, the password cipher and, if configured,
// the Google ID token verifier
func (app *Application) initCrypto(ctx context.Context) error {
	signer, verifier, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.signer, app.verifier = signer, verifier

	cipher, err := InitPasswordCipher(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize password cipher: %w", err)
	}
	app.cipher = cipher

	if app.cfg.GoogleClientID != "" {
		google, err := federation.NewGoogleVerifier(ctx, app.cfg.GoogleIssuerURL, app.cfg.GoogleClientID)
		if err != nil {
			return fmt.Errorf("failed to initialize google verifier: %w", err)
		}
		app.google = google
		app.logger.Info("google sign-in enabled")
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:     app.signer,
		Verifier:   app.verifier,
		Tokens:     app.tokens,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		AccessTTL:  max(app.cfg.AccessTokenLifetime, 0),
		RefreshTTL: max(app.cfg.RefreshTokenLifetime, 0),
	}

	users := app.db.Users()
	app.userService = &service.UserService{Users: users}
	app.credentials = service.NewCredentials(
		&service.LocalCredentials{Users: users, Cipher: app.cipher},
		&service.FederatedCredentials{Users: users, Kind: domain.ProviderGoogle},
	)

	// Redis expires keys natively; the other stores need sweeping
	if sweeper, ok := app.tokens.(store.ExpiredTokenSweeper); ok {
		app.housekeepingService = service.NewHousekeepingService(
			sweeper,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.tokens,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.Credentials = app.credentials
	router.Cookies = httpapi.CookieConfig{Secure: app.cfg.CookieSecure}
	if app.google != nil {
		router.GoogleVerifier = app.google
	}
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
