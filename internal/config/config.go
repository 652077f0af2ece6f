// Package config loads the application configuration from YAML and the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds relational store settings. DSN overrides the individual fields.
type DatabaseConfig struct {
	Driver         string        `yaml:"driver"          env:"DB_DRIVER"                env-default:"postgres"`
	DSN            string        `yaml:"dsn"             env:"DATABASE_URL"`
	Host           string        `yaml:"host"            env:"DB_HOST"                  env-default:"localhost"`
	Port           string        `yaml:"port"            env:"DB_PORT"                  env-default:"5432"`
	User           string        `yaml:"user"            env:"DB_USER"`
	Password       string        `yaml:"password"        env:"DB_PASSWORD"`
	Name           string        `yaml:"name"            env:"DB_NAME"                  env-default:"prep_tracker"`
	SSLMode        string        `yaml:"ssl_mode"        env:"DB_SSLMODE"               env-default:"disable"`
	InstanceName   string        `yaml:"instance_name"   env:"INSTANCE_CONNECTION_NAME"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"       env-default:"60s"`
	AutoMigrate    bool          `yaml:"auto_migrate"    env:"RUN_MIGRATIONS"           env-default:"true"`
}

// RedisConfig holds Redis settings. Redis is optional: an empty Host disables it.
type RedisConfig struct {
	Host     string        `yaml:"host"      env:"REDIS_HOST"`
	Port     string        `yaml:"port"      env:"REDIS_PORT"      env-default:"6379"`
	Password string        `yaml:"password"  env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"5m"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"    env:"JWT_SECRET"         env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl"     env:"AUTH_TOKEN_TTL"     env-default:"168h"`
	RevocationGC time.Duration `yaml:"revocation_gc" env:"AUTH_REVOCATION_GC" env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings. Lists are comma separated.
type CORSConfig struct {
	AllowedOrigins string        `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string        `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders string        `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Authorization,Content-Type"`
	MaxAge         time.Duration `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"12h"`
}

// Origins splits AllowedOrigins.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods splits AllowedMethods.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers splits AllowedHeaders.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

// SeedConfig controls the demo data loaded at startup.
type SeedConfig struct {
	Demo bool `yaml:"demo" env:"SEED_DEMO" env-default:"false"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String hides secrets so the config can be logged.
func (c Config) String() string {
	return fmt.Sprintf("server=%s db=%s redis=%t log=%s/%s seed=%t",
		c.Server.Addr(), c.Database.Driver, c.Redis.Enabled(), c.Log.Level, c.Log.Format, c.Seed.Demo)
}
