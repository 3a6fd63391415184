// Package config loads the HomeNet client configuration from the
// environment and bootstraps logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix prefixes every environment variable, e.g. HOMENET_API_URL
const EnvPrefix = "HOMENET"

// Store backends for local persistence
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds the client configuration
type Config struct {
	APIURL string `envconfig:"API_URL" default:"http://localhost:8000"`

	// Local persistence
	Store       string `envconfig:"STORE" default:"file"`
	StorePath   string `envconfig:"STORE_PATH" default:""`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	AlertPollInterval time.Duration `envconfig:"ALERT_POLL_INTERVAL" default:"60s"`

	// Development backend
	DevServerAddr string `envconfig:"DEVSERVER_ADDR" default:":8000"`
	JWTSecret     string `envconfig:"JWT_SECRET" default:""`
}

// New creates a Config by parsing HOMENET_ environment variables
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("store", cfg.Store).
		Str("store_path", cfg.StorePath).
		Bool("database_url_present", cfg.DatabaseURL != "").
		Dur("http_timeout", cfg.HTTPTimeout).
		Msg("Configuration loaded")

	return &cfg, nil
}

// ResolveDefaults validates the store backend and derives the store path
func (c *Config) ResolveDefaults() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))

	switch c.Store {
	case StoreFile, StoreSQLite:
		if c.StorePath == "" {
			path, err := defaultStorePath(c.Store)
			if err != nil {
				return err
			}
			c.StorePath = path
		}
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s_DATABASE_URL is required for the postgres store", EnvPrefix)
		}
	default:
		return fmt.Errorf("unsupported %s_STORE: %s (valid: file, memory, sqlite, postgres)", EnvPrefix, c.Store)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s_HTTP_TIMEOUT must be positive", EnvPrefix)
	}
	if c.AlertPollInterval <= 0 {
		return fmt.Errorf("%s_ALERT_POLL_INTERVAL must be positive", EnvPrefix)
	}
	return nil
}

func defaultStorePath(store string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	name := "state.json"
	if store == StoreSQLite {
		name = "state.db"
	}
	return filepath.Join(home, ".homenet", name), nil
}
