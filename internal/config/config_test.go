package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func setSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestLoad_SQLiteDefaults(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Errorf("JWTAccessExpiry = %v, want 15m", cfg.JWTAccessExpiry)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.RedisPort != "6379" {
		t.Errorf("RedisPort = %q, want 6379", cfg.RedisPort)
	}
}

func TestLoad_PostgresRequiresConnectionVars(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_SECRET", testSecret)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without postgres connection variables")
	}
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should mention %s", err, key)
		}
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a JWT secret shorter than 32 bytes")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject unsupported drivers")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("JWT_REFRESH_EXPIRY", "24h")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWTRefreshExpiry != 24*time.Hour {
		t.Errorf("JWTRefreshExpiry = %v, want 24h", cfg.JWTRefreshExpiry)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() should be true")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"invalid", time.Hour},
		{"-5m", time.Hour},
		{"", time.Hour},
	}

	for _, tt := range tests {
		if got := parseDuration(tt.value, time.Hour); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := GetEnvInt("TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt() = %d, want 42", got)
	}

	t.Setenv("TEST_INT", "abc")
	if got := GetEnvInt("TEST_INT", 1); got != 1 {
		t.Errorf("GetEnvInt() = %d, want fallback 1", got)
	}
}
