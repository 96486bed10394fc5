// Package database owns the relational store: connection bootstrap, schema,
// the catalog loader and the transactional write engine.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/poisepms/poise/internal/models"
)

// DefaultSQLitePath returns ~/.poise/poise.db, creating the directory
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	poiseDir := filepath.Join(home, ".poise")
	if err := os.MkdirAll(poiseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	return filepath.Join(poiseDir, "poise.db"), nil
}

// Open connects to the configured store, applies per-driver session
// settings and makes sure the schema exists. Every failure is reported as
// ErrStoreUnavailable.
func Open(ctx context.Context, driverName, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driverName)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}

	if dsn == "" && dialect.Driver == DriverSQLite {
		dsn, err = DefaultSQLitePath()
		if err != nil {
			return nil, Dialect{}, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
		}
	}
	if dsn == "" {
		return nil, Dialect{}, fmt.Errorf("%w: database.dsn is required for driver %s", models.ErrStoreUnavailable, dialect.Driver)
	}

	if dialect.Driver == DriverMySQL {
		dsn, err = mysqlDSN(dsn)
		if err != nil {
			return nil, Dialect{}, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
		}
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("%w: failed to open database: %w", models.ErrStoreUnavailable, err)
	}

	if err := prepare(ctx, db, dialect); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, Dialect{}, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}

	return db, dialect, nil
}

// prepare pings the store, applies session pragmas and bootstraps the schema
func prepare(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// One session, one writer: a single connection also keeps SQLite
	// pragmas and in-memory databases bound to the same handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if dialect.Driver == DriverSQLite {
		pragmas := []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				return fmt.Errorf("failed to apply %q: %w", pragma, err)
			}
		}
	}

	if err := EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// mysqlDSN makes UPDATE report matched rather than changed rows, so that
// rewriting a column with its current value still counts as affecting a row.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}
