// Package main implements the entry point for the folio API server,
// the backend for a personal portfolio site: public project listings,
// a contact form, and an authenticated admin surface for content
// management.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/jwhitfield/folio-api/internal/config"
	"github.com/jwhitfield/folio-api/internal/platform/logger"
	"github.com/jwhitfield/folio-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) instead of starting the server")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("folio-api: %v", err)
	}
}

// run loads configuration, wires the application, and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.Server.Env))

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd)
	}

	// The registry outlives any single round of application wiring. In
	// development, live-reload tooling rebuilds the application but not the
	// process; the registry lets the rebuilt provider adopt the existing
	// pool instead of leaking one per reload.
	registry := postgres.NewClientRegistry()
	provider := postgres.NewClientProvider(
		cfg.Database,
		postgres.ModeFromEnv(cfg.Server.Env),
		registry,
		appLogger,
	)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger, provider)
	if err != nil {
		// Wiring failed after the provider may have opened a handle.
		if relErr := provider.Release(); relErr != nil {
			appLogger.Error("failed to release database handle",
				slog.String("error", relErr.Error()))
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
