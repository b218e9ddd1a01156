package token

import (
	"errors"
	"time"
)

// Config configures token issuance and validation.
type Config struct {
	// Secret is the HMAC signing key. Required, no default: a missing or
	// malformed secret is a startup failure, never a per-request error.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TTL is the token lifetime (default: 1h). Not client-controllable.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Leeway tolerated on expiry checks to absorb clock skew (default: 60s).
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
}

// MinSecretLength is the minimum accepted HMAC key length in bytes.
const MinSecretLength = 32

// ApplyDefaults fills in zero-value fields with sensible defaults.
// The secret deliberately has no default.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
	if c.Leeway == 0 {
		c.Leeway = 60 * time.Second
	}
}

// Validate checks the startup invariants for token signing.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: signing secret is required")
	}
	if len(c.Secret) < MinSecretLength {
		return errors.New("token: signing secret must be at least 32 bytes")
	}
	if c.TTL <= 0 {
		return errors.New("token: ttl must be positive")
	}
	if c.Leeway < 0 {
		return errors.New("token: leeway must not be negative")
	}
	return nil
}
