// Copyright (c) 2026 Lumen. All rights reserved.
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
  - DI-Friendly: Passed to core components (DB, Redis, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Storage Drivers

const (
	// DriverPostgres serves content from PostgreSQL (production).
	DriverPostgres = "postgres"

	// DriverMemory serves content from YAML fixtures held in memory.
	DriverMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Lumen API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the content backend: "postgres" or "memory".
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// FixturesPath is the directory of YAML fixtures loaded by the memory driver.
	FixturesPath string `env:"FIXTURES_PATH"`

	// Key-Value Cache (Redis). Caching is disabled when empty.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// AdminRequireRole makes /admin routes demand an administrative role
	// instead of accepting any valid credential.
	AdminRequireRole bool `env:"ADMIN_REQUIRE_ROLE" envDefault:"true"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate enforces the requirements that depend on more than one field.
func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	case DriverMemory:
		if c.FixturesPath == "" {
			return errors.New("FIXTURES_PATH is required when STORAGE_DRIVER=memory")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
