package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/metrics"
	projectservice "github.com/poisepms/poise/internal/services/project"
	"github.com/poisepms/poise/internal/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time

	// Engine executes write plans against the store
	Engine *database.Engine
	// Metrics records write-plan outcomes for the session
	Metrics *metrics.Recorder
	// Currency is the symbol printed before amounts
	Currency string

	// Service layer (business logic)
	ProjectService projectservice.Service
}

// New creates a new App with all services initialized. It does not touch
// the store; call Load to hydrate the catalog.
func New(db *sql.DB, dialect database.Dialect, opts ...Option) *App {
	cfg := &appConfig{
		logger:   slog.Default(),
		clock:    time.Now,
		currency: "R",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewRecorder()
	}
	// every log line of the session names who ran it
	cfg.logger = cfg.logger.With("operator", user.CurrentUsername())

	engine := database.NewEngine(db, dialect,
		database.WithTimeout(cfg.writeTimeout),
		database.WithLogger(cfg.logger),
		database.WithMetrics(cfg.metrics),
	)

	return &App{
		db:       db,
		logger:   cfg.logger,
		now:      cfg.clock,
		Engine:   engine,
		Metrics:  cfg.metrics,
		Currency: cfg.currency,
		ProjectService: projectservice.NewService(engine,
			projectservice.WithClock(cfg.clock),
			projectservice.WithLogger(cfg.logger),
			projectservice.WithMetrics(cfg.metrics),
		),
	}
}

// Load hydrates the project catalog from the store
func (a *App) Load(ctx context.Context) error {
	return a.ProjectService.Load(ctx)
}

// Now returns the application's current time
func (a *App) Now() time.Time {
	return a.now()
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close logs a summary of the session's write plans and closes the store
func (a *App) Close() error {
	if snap, err := a.Metrics.Snapshot(); err == nil {
		a.logger.Debug("session summary",
			"committed", snap.Committed,
			"rolled_back", snap.RolledBack,
			"uptime", snap.Uptime.String(),
		)
	}
	return a.db.Close()
}
