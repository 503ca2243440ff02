package config

import (
	"fmt"
	"time"
)

// DefaultTokenExpiration is the session token lifetime when none is configured.
const DefaultTokenExpiration = 24 * time.Hour

// minSecretLength is the shortest accepted HS256 signing secret.
const minSecretLength = 16

// TokenConfig holds configuration for session token signing and validation.
type TokenConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// normalize validates the configuration.
func (c *TokenConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("token secret is required but not set (set %s_TOKEN_SECRET or JWT_SECRET)", EnvPrefix)
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("token secret must be at least %d characters, got: %d", minSecretLength, len(c.Secret))
	}
	if c.Expiration < time.Minute {
		return fmt.Errorf("token expiration must be at least 1 minute, got: %s", c.Expiration)
	}
	return nil
}
