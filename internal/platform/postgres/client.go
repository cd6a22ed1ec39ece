package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jwhitfield/folio-api/internal/config"
	"github.com/jwhitfield/folio-api/internal/redact"
)

// Mode selects how the provider treats the process-wide registry.
type Mode string

// Provider execution modes.
const (
	// ModeProduction keeps the handle in the provider only. The wiring is
	// built exactly once per process, so the registry is never touched.
	ModeProduction Mode = "production"

	// ModeDevelopment additionally caches the handle in the registry so
	// that re-running the application wiring (live-reload tooling restarts
	// everything except the process) reuses the existing pool instead of
	// opening a new one. Without this, every reload leaks a pool until the
	// database's connection limit is exhausted.
	ModeDevelopment Mode = "development"
)

// ModeFromEnv maps a config environment name to a provider mode.
func ModeFromEnv(env string) Mode {
	if env == config.EnvProduction {
		return ModeProduction
	}
	return ModeDevelopment
}

// Sentinel errors returned by ClientProvider.Acquire.
var (
	// ErrInvalidClientConfig indicates the database configuration is
	// missing or malformed. Acquire never retries; every call with the
	// same configuration fails the same way.
	ErrInvalidClientConfig = errors.New("invalid database client configuration")

	// ErrConnectFailed indicates the pool could be configured but the
	// database was not reachable. Retry policy belongs to the caller.
	ErrConnectFailed = errors.New("database connection failed")
)

// pingTimeout bounds the liveness check performed on first acquisition.
const pingTimeout = 5 * time.Second

// ClientRegistry is the process-wide storage slot for the shared client
// handle. Its lifetime spans the whole process, independent of any single
// round of application wiring, so a handle stored here survives wiring
// re-initialization. Construct one in main and share it across providers.
type ClientRegistry struct {
	mu sync.Mutex
	db *sql.DB
}

// NewClientRegistry creates an empty registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{}
}

// load returns the stored handle, or nil if the slot is empty.
func (r *ClientRegistry) load() *sql.DB {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db
}

// store places a handle in the slot, replacing any previous value.
func (r *ClientRegistry) store(db *sql.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.db = db
}

// clear empties the slot.
func (r *ClientRegistry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.db = nil
}

// OpenFunc opens a database handle for the given driver and DSN.
// It exists as a seam for tests; production code uses sql.Open.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

// ProviderOption customizes a ClientProvider.
type ProviderOption func(*ClientProvider)

// WithOpenFunc overrides how the provider opens the underlying handle.
func WithOpenFunc(open OpenFunc) ProviderOption {
	return func(p *ClientProvider) {
		p.open = open
	}
}

// ClientProvider owns the lifecycle of the process's single pooled database
// client handle. All request-handling code acquires the handle through the
// same provider, which constructs it lazily on first use and returns the
// identical handle to every subsequent caller.
type ClientProvider struct {
	cfg      config.DatabaseConfig
	mode     Mode
	registry *ClientRegistry
	open     OpenFunc
	logger   *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// NewClientProvider creates a provider for the given database configuration.
// The registry may be nil, in which case development mode degrades to
// provider-local caching only. If logger is nil, a default logger will be
// used.
func NewClientProvider(
	cfg config.DatabaseConfig,
	mode Mode,
	registry *ClientRegistry,
	logger *slog.Logger,
	opts ...ProviderOption,
) *ClientProvider {
	if logger == nil {
		logger = slog.Default()
	}

	p := &ClientProvider{
		cfg:      cfg,
		mode:     mode,
		registry: registry,
		open:     sql.Open,
		logger:   logger.With(slog.String("component", "db_client_provider")),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Acquire returns the shared database client handle, constructing it exactly
// once. Every call between reload events observes the same handle identity.
// In non-production mode the handle is also cached in the process-wide
// registry so a reconstructed provider adopts it instead of opening a second
// pool.
//
// Construction failures leave both slots empty: the next call starts from
// scratch. Acquire performs no retries; ErrInvalidClientConfig and
// ErrConnectFailed surface directly to the caller.
func (p *ClientProvider) Acquire(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	// After a reload event the provider is rebuilt but the registry
	// survives; adopt its handle rather than constructing a second pool.
	if p.mode != ModeProduction && p.registry != nil {
		if db := p.registry.load(); db != nil {
			p.logger.Debug("adopted existing database handle from registry")
			p.db = db
			return db, nil
		}
	}

	db, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	p.db = db
	if p.mode != ModeProduction && p.registry != nil {
		p.registry.store(db)
	}

	p.logger.Info("database connection established",
		slog.String("url", redact.URL(p.cfg.URL)),
		slog.String("mode", string(p.mode)))
	return db, nil
}

// Release closes the handle and clears both the provider-local slot and the
// registry slot. Intended for graceful shutdown; safe to call when no handle
// was ever acquired.
func (p *ClientProvider) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}

	err := p.db.Close()
	p.db = nil
	if p.registry != nil {
		p.registry.clear()
	}

	if err != nil {
		p.logger.Error("error closing database handle",
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to close database handle: %w", err)
	}

	p.logger.Info("database handle released")
	return nil
}

// connect validates configuration, opens the pool, applies tuning, and
// verifies liveness. A handle that fails the liveness check is closed before
// the error is returned, so a failed construction never leaks resources.
func (p *ClientProvider) connect(ctx context.Context) (*sql.DB, error) {
	if p.cfg.URL == "" {
		return nil, fmt.Errorf("%w: database URL is empty", ErrInvalidClientConfig)
	}

	db, err := p.open("pgx", p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClientConfig, redact.Error(err))
	}

	if p.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.cfg.MaxOpenConns)
	}
	if p.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.cfg.MaxIdleConns)
	}
	if p.cfg.ConnMaxLifetimeMins > 0 {
		db.SetConnMaxLifetime(time.Duration(p.cfg.ConnMaxLifetimeMins) * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			p.logger.Error("error closing handle after failed ping",
				slog.String("error", redact.Error(closeErr)))
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, redact.Error(err))
	}

	return db, nil
}
