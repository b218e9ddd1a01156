// Package config loads and validates the service configuration from a
// YAML file, a .env file and environment variables, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"time"

	"github.com/kbukum/authd/internal/database"
	"github.com/kbukum/authd/internal/logger"
	"github.com/kbukum/authd/internal/observability"
	"github.com/kbukum/authd/internal/server"
	"github.com/kbukum/authd/internal/token"
)

// Config is the root configuration for authd.
type Config struct {
	Server   server.Config        `yaml:"server" mapstructure:"server"`
	Database database.Config      `yaml:"database" mapstructure:"database"`
	JWT      token.Config         `yaml:"jwt" mapstructure:"jwt"`
	Hasher   HasherConfig         `yaml:"hasher" mapstructure:"hasher"`
	Log      logger.Config        `yaml:"log" mapstructure:"log"`
	Tracing  observability.Config `yaml:"tracing" mapstructure:"tracing"`
}

// HasherConfig tunes the argon2id cost parameters.
type HasherConfig struct {
	// Time is the number of iterations (default: 1).
	Time uint32 `yaml:"time" mapstructure:"time"`
	// Memory is the memory usage in KiB (default: 64*1024).
	Memory uint32 `yaml:"memory" mapstructure:"memory"`
	// Threads is the parallelism (default: 4).
	Threads uint8 `yaml:"threads" mapstructure:"threads"`
}

// ApplyDefaults fills in defaults across all sections. The JWT secret
// deliberately has no default.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Log.ApplyDefaults()
	if c.Database.DSN == "" {
		c.Database.DSN = "authd.db"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "authd"
	}
}

// Validate checks the whole configuration. A missing or malformed signing
// secret is reported here so the process fails at startup, never per
// request.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.JWT.TTL > 30*24*time.Hour {
		return fmt.Errorf("jwt.ttl of %s is unreasonably long", c.JWT.TTL)
	}
	return nil
}
