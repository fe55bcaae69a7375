// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

Settings are layered in a fixed order:

 1. Built-in defaults for operational knobs (port, pool size, paths).
 2. An optional YAML file (path from --config or CONFIG_FILE).
 3. Environment variables, mapped by 'caarlos0/env'. The environment always wins.

The token secret and TTL have no defaults. They must come from the file
(jwt.secret, jwt.expiration.ms) or the environment (JWT_SECRET,
JWT_EXPIRATION_MS), and [Config.Validate] refuses to start without them.

Usage:

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, TokenCodec) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the board API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  yaml:"server_port"`
	Environment string `env:"ENVIRONMENT"  yaml:"environment"`
	Debug       bool   `env:"DEBUG"        yaml:"debug"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL"       yaml:"database_url"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" yaml:"database_max_conns"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" yaml:"migration_path"`

	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `env:"AUTO_MIGRATE" yaml:"auto_migrate"`

	// Key-Value Cache (Redis). Empty disables the principal cache.
	RedisURL          string        `env:"REDIS_URL"           yaml:"redis_url"`
	PrincipalCacheTTL time.Duration `env:"PRINCIPAL_CACHE_TTL" yaml:"principal_cache_ttl"`

	// Password hashing work factor
	BcryptCost int `env:"BCRYPT_COST" yaml:"bcrypt_cost"`

	// Token signing
	JWT JWTConfig `yaml:"jwt" envPrefix:"JWT_"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`

	// TrustedProxies lists the peers (IPs or CIDRs) whose X-Real-IP and
	// X-Forwarded-For headers are believed. Empty means headers are ignored.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," yaml:"trusted_proxies"`
}

// JWTConfig maps the jwt.* keys.
type JWTConfig struct {
	Secret     string           `env:"SECRET" yaml:"secret"`
	Expiration ExpirationConfig `yaml:"expiration" envPrefix:"EXPIRATION_"`
}

// ExpirationConfig maps jwt.expiration.ms.
type ExpirationConfig struct {
	MS int64 `env:"MS" yaml:"ms"`
}

// TokenTTL converts jwt.expiration.ms into a duration.
func (j JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.Expiration.MS) * time.Millisecond
}

// # Configuration Loading

// Default returns the configuration used before any file or environment is applied.
func Default() *Config {
	return &Config{
		ServerPort:        "8080",
		Environment:       "development",
		MigrationPath:     "./data/migrations",
		DatabaseMaxConns:  25,
		PrincipalCacheTTL: 5 * time.Minute,
		BcryptCost:        10,
	}
}

// Load builds a [Config] from defaults, the optional YAML file at path and the
// environment, then validates it.
func Load(path string) (*Config, error) {

	// Initialize with the built-in defaults
	cfg := Default()

	// Overlay the YAML file when one is given
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	// Environment variables override anything set above
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every missing or out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	} else if len(c.JWT.Secret) < constants.MinSecretLength {
		errs = append(errs, fmt.Errorf("jwt.secret must be at least %d bytes", constants.MinSecretLength))
	}
	if c.JWT.Expiration.MS <= 0 {
		errs = append(errs, errors.New("jwt.expiration.ms (JWT_EXPIRATION_MS) must be a positive number of milliseconds"))
	}
	if c.RedisURL != "" && c.PrincipalCacheTTL <= 0 {
		errs = append(errs, errors.New("PRINCIPAL_CACHE_TTL must be positive when REDIS_URL is set"))
	}

	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a single-host prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid CIDR %q: %w", value, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(value)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q: %w", value, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
