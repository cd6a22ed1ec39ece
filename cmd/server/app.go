package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwhitfield/folio-api/internal/config"
	"github.com/jwhitfield/folio-api/internal/platform/postgres"
	"github.com/jwhitfield/folio-api/internal/service/auth"
	"github.com/jwhitfield/folio-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// provider owns the lifecycle of the shared database handle; db is the
	// handle acquired from it during wiring.
	provider *postgres.ClientProvider
	db       *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	projectStore store.ProjectStore
	messageStore store.MessageStore

	// Service interfaces
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
}

// newApplication creates a new application instance with all dependencies
// initialized. The database handle is acquired through the provider so that
// every component shares the same pool.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	provider *postgres.ClientProvider,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		provider: provider,
	}

	var err error
	app.db, err = provider.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database handle: %w", err)
	}

	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(app.db, bcrypt.DefaultCost, logger)
	app.projectStore = postgres.NewPostgresProjectStore(app.db, logger)
	app.messageStore = postgres.NewPostgresMessageStore(app.db, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.provider != nil {
		if err := app.provider.Release(); err != nil {
			app.logger.Error("error releasing database handle", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
