package app

import (
	"log/slog"
	"time"

	"github.com/poisepms/poise/internal/metrics"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger       *slog.Logger
	clock        func() time.Time
	metrics      *metrics.Recorder
	writeTimeout time.Duration
	currency     string
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock sets the source of the current date used by finalisation
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}

// WithMetrics sets the metrics recorder shared by the engine and services
func WithMetrics(m *metrics.Recorder) Option {
	return func(cfg *appConfig) {
		cfg.metrics = m
	}
}

// WithWriteTimeout bounds every write plan
func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.writeTimeout = d
	}
}

// WithCurrency sets the symbol printed before amounts
func WithCurrency(symbol string) Option {
	return func(cfg *appConfig) {
		cfg.currency = symbol
	}
}
