package config

import (
	"fmt"
	"slices"
)

const minSecretLen = 32

var drivers = []string{"postgres", "mysql", "sqlite"}

// Validate checks the rules tags cannot express. Load calls it.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minSecretLen, len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if !slices.Contains(drivers, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of %v (got %q)", drivers, c.Database.Driver)
	}
	if c.Database.Driver != "sqlite" && c.Database.DSN == "" && c.Database.User == "" {
		return fmt.Errorf("database: either dsn or user must be set for %s", c.Database.Driver)
	}
	return nil
}
