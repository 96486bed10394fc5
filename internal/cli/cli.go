package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/poisepms/poise/internal/app"
	"github.com/poisepms/poise/internal/cli/styles"
	"github.com/poisepms/poise/internal/config"
	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	logFile io.Closer
	// borrowed is set when the App came from the command context; its owner closes it
	borrowed bool
}

// NewCLI loads .env and config, opens the configured store, hydrates the
// catalog and wires the application container.
func NewCLI(ctx context.Context) (*CLI, error) {
	// .env is optional; it usually carries DSN credentials
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := logging.Init(cfg.Logging.File, cfg.Logging.SlogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	styles.Init(cfg.Display.Theme)

	db, dialect, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(db, dialect,
		app.WithLogger(logging.Logger),
		app.WithWriteTimeout(cfg.Database.WriteTimeout),
		app.WithCurrency(cfg.Display.Currency),
	)
	if err := application.Load(ctx); err != nil {
		_ = application.Close()
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	slog.Debug("cli initialized", "driver", dialect.Driver, "projects", application.ProjectService.Catalog().Len())

	return &CLI{
		App:     application,
		Config:  cfg,
		logFile: logFile,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.borrowed {
		return nil
	}
	err := c.App.Close()
	if c.logFile != nil {
		if closeErr := c.logFile.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
