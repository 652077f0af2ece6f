package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

// validEnv sets the minimum env for a valid config and points CONFIG_PATH away from any local file.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/prep")
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EnvDefaults(t *testing.T) {
	validEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/prep", cfg.Database.DSN)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins())
	assert.False(t, cfg.Seed.Demo)
}

func TestLoad_EnvOverrides(t *testing.T) {
	validEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://prep.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.True(t, cfg.Seed.Demo)
	assert.Equal(t, []string{"http://localhost:5173", "https://prep.example.com"}, cfg.CORS.Origins())
}

func TestLoad_YAML(t *testing.T) {
	// A set but empty variable still overrides YAML.
	unsetEnv(t, "JWT_SECRET")
	unsetEnv(t, "DATABASE_URL")
	path := writeYAML(t, `
server:
  port: 9090
database:
  driver: sqlite
  name: prep.db
auth:
  jwt_secret: "`+testSecret+`"
  token_ttl: 24h
log:
  format: text
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "prep.db", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_MissingSecret(t *testing.T) {
	validEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 5000},
			Database: DatabaseConfig{Driver: "postgres", DSN: "postgres://x"},
			Auth:     AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "jwt_secret"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: "token_ttl"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "database.driver"},
		{name: "no credentials", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: "dsn or user"},
		{name: "sqlite needs no credentials", mutate: func(c *Config) {
			c.Database.Driver = "sqlite"
			c.Database.DSN = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_StringHidesSecrets(t *testing.T) {
	t.Parallel()

	cfg := Config{Auth: AuthConfig{JWTSecret: testSecret}, Database: DatabaseConfig{Password: "hunter2"}}

	assert.NotContains(t, cfg.String(), testSecret)
	assert.NotContains(t, cfg.String(), "hunter2")
}
