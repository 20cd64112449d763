// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	// Tests use TEST_DATABASE_URL instead, pointing at the test database.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	// MaxBodyBytes caps incoming request body sizes.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	// MigrateOnStart applies pending goose migrations before serving traffic.
	MigrateOnStart bool `envconfig:"MIGRATE_ON_START" default:"false"`
}

// Load reads configuration from environment variables and returns a Config.
// DATABASE_URL is validated here rather than via envconfig's required tag so
// that an empty-but-set variable is rejected the same as an unset one.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("required environment variable not set: DATABASE_URL")
	}
	return cfg, nil
}
