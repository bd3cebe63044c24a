// Package config handles configuration loading for the blog service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MinJWTSecretLength is the shortest HS256 secret the service accepts.
const MinJWTSecretLength = 32

// Config holds all configuration for the blog service.
type Config struct {
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	SQLitePath       string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	PageSize         int
	Port             string
	Environment      string
	LogLevel         string
	SwaggerHost      string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	r := &requiredVars{}
	cfg := &Config{
		DBDriver:         strings.ToLower(GetEnv("DB_DRIVER", DriverPostgres)),
		SQLitePath:       GetEnv("SQLITE_PATH", "blog.db"),
		DBSSLMode:        GetEnv("DB_SSLMODE", "disable"),
		RedisHost:        r.get("REDIS_HOST"),
		RedisPort:        GetEnv("REDIS_PORT", "6379"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:        r.get("JWT_SECRET"),
		JWTAccessExpiry:  parseDuration(GetEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(GetEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		PageSize:         GetEnvInt("PAGE_SIZE", 10),
		Port:             GetEnv("PORT", "8080"),
		Environment:      GetEnv("ENVIRONMENT", "development"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		SwaggerHost:      GetEnv("SWAGGER_HOST", ""),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		cfg.DBHost = r.get("DB_HOST")
		cfg.DBPort = GetEnv("DB_PORT", "5432")
		cfg.DBUser = r.get("DB_USER")
		cfg.DBPassword = r.get("DB_PASSWORD")
		cfg.DBName = r.get("DB_NAME")
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if len(r.missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(r.missing, ", "))
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in a production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

type requiredVars struct {
	missing []string
}

func (r *requiredVars) get(key string) string {
	v, err := GetEnvRequired(key)
	if err != nil {
		r.missing = append(r.missing, key)
	}
	return v
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return defaultValue
	}
	return duration
}
