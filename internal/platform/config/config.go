// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// # Configuration Schema

// Config holds all runtime configuration for the Fiver API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// PublicBaseURL roots every hypermedia link. Empty means "derive from the request".
	// Required in production, where the Host header cannot be trusted.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// TrustForwardedHeaders lets X-Forwarded-Proto/Host shape derived links.
	TrustForwardedHeaders bool `env:"TRUST_FORWARDED_HEADERS" envDefault:"false"`

	// MediaProduct is the <product> of application/vnd.<product>.hateoas+json.
	MediaProduct string `env:"MEDIA_PRODUCT" envDefault:"fiver"`

	// Movie storage
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	SeedDemoData bool   `env:"SEED_DEMO_DATA" envDefault:"true"`

	// Relational Database (PostgreSQL), required when StoreBackend is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the movie read cache.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Pagination limits
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"10"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE"     envDefault:"50"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StoreBackend {
	case constants.StoreMemory:
	case constants.StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORE_BACKEND=%s", constants.StorePostgres)
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("config: page sizes must satisfy 1 <= DEFAULT_PAGE_SIZE (%d) <= MAX_PAGE_SIZE (%d)",
			c.DefaultPageSize, c.MaxPageSize)
	}

	if c.MediaProduct == "" {
		return fmt.Errorf("config: MEDIA_PRODUCT must not be empty")
	}

	if c.IsProduction() && c.PublicBaseURL == "" {
		return fmt.Errorf("config: PUBLIC_BASE_URL is required when ENVIRONMENT=production")
	}

	return nil
}

// PageLimits returns the pagination normalization bounds.
func (c *Config) PageLimits() pagination.Limits {
	return pagination.Limits{DefaultSize: c.DefaultPageSize, MaxSize: c.MaxPageSize}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
