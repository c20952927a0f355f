package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort         string        `env:"HTTP_PORT"          envDefault:"8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"30s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPBodyLimitMB  int           `env:"HTTP_BODY_LIMIT_MB" envDefault:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Conversion
	ConvertWorkers   int    `env:"CONVERT_WORKERS"    envDefault:"4"`
	DefaultCSVLayout string `env:"DEFAULT_CSV_LAYOUT" envDefault:"sections"`

	// Observability
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load reads configuration from environment variables. Values from a .env
// file in the working directory are applied first when the file exists;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if c.ConvertWorkers < 1 {
		return fmt.Errorf("CONVERT_WORKERS must be at least 1, got %d", c.ConvertWorkers)
	}
	if c.HTTPBodyLimitMB < 1 {
		return fmt.Errorf("HTTP_BODY_LIMIT_MB must be at least 1, got %d", c.HTTPBodyLimitMB)
	}
	switch c.DefaultCSVLayout {
	case "sections", "side-by-side":
	default:
		return fmt.Errorf("DEFAULT_CSV_LAYOUT must be sections or side-by-side, got %q", c.DefaultCSVLayout)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}

// BodyLimit returns the maximum request body size in bytes.
func (c *Config) BodyLimit() int {
	return c.HTTPBodyLimitMB * 1024 * 1024
}
