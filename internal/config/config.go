package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the config file
const EnvPrefix = "POISE_"

// defaults is loaded before the config file so every key has a value
var defaults = []byte(`
database:
  driver: sqlite
  dsn: ""
  write_timeout: 5s
logging:
  level: info
  file: ""
display:
  currency: R
  theme:
    preset: default
`)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `koanf:"database" yaml:"database"`
	Logging  LoggingConfig  `koanf:"logging" yaml:"logging"`
	Display  DisplayConfig  `koanf:"display" yaml:"display"`
}

// DatabaseConfig selects and bounds the relational store
type DatabaseConfig struct {
	Driver string `koanf:"driver" yaml:"driver"`
	// DSN is the driver-specific data source. Empty means ~/.poise/poise.db for sqlite.
	DSN string `koanf:"dsn" yaml:"dsn"`
	// WriteTimeout bounds each write plan. Zero disables the bound.
	WriteTimeout time.Duration `koanf:"write_timeout" yaml:"write_timeout"`
}

// MarshalYAML writes the timeout as a duration string rather than nanoseconds
func (d DatabaseConfig) MarshalYAML() (any, error) {
	return struct {
		Driver       string `yaml:"driver"`
		DSN          string `yaml:"dsn"`
		WriteTimeout string `yaml:"write_timeout"`
	}{d.Driver, d.DSN, d.WriteTimeout.String()}, nil
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level string `koanf:"level" yaml:"level"`
	// File is the log path. Empty means ~/.poise/logs/poise.log.
	File string `koanf:"file" yaml:"file"`
}

// SlogLevel converts the configured level name
func (l LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DisplayConfig controls human-readable output
type DisplayConfig struct {
	// Currency is printed before amounts, e.g. "R 1500.00"
	Currency string      `koanf:"currency" yaml:"currency"`
	Theme    ColorScheme `koanf:"theme" yaml:"theme"`
}

// Load loads config from the user's config directory, then applies
// POISE_ environment overrides. Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		configPath = ""
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. Precedence, highest first: environment,
// file, defaults. A missing file is not an error.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(data), koanfyaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps POISE_SECTION_FIELD_NAME to section.field_name. Theme colors
// sit one level deeper: POISE_DISPLAY_THEME_ACCENT is display.theme.accent.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	if section == "display" {
		if rest, found := strings.CutPrefix(field, "theme_"); found {
			return "display.theme." + rest
		}
	}
	return section + "." + field
}

// Validate checks values the loader cannot default
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "pgx", "postgres", "mysql":
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, pgx, postgres, mysql", c.Database.Driver)
	}
	if c.Database.WriteTimeout < 0 {
		return fmt.Errorf("database.write_timeout cannot be negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(configPath string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// 0600: the DSN may carry credentials
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path Load reads from
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "poise", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "poise", "config.yaml"), nil
}

// applyDefaults fills in values the file or environment left blank
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Display.Currency == "" {
		c.Display.Currency = "R"
	}
	c.Display.Theme.ApplyDefaults()
}
