package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "DB_DRIVER", "DB_SOURCE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_LOG_LEVEL",
		"SESSION_SECRET", "SESSION_TTL", "COOKIE_SECURE", "LOGIN_RATE_PER_MINUTE",
		"CORS_ORIGINS", "APP_TIMEZONE", "APP_LOCALE", "ADMIN_USERNAME", "ADMIN_PASSWORD", "SEED_MENU",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "armaso.db", cfg.DBSource)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.LoginRatePerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "Asia/Jakarta", cfg.Location.String())
	assert.Equal(t, "id", cfg.Locale)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.SeedMenu)
	assert.False(t, cfg.CookieSecure)
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.False(t, cfg.Release())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "release")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("CORS_ORIGINS", "https://pos.example.com, https://admin.example.com ,")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("SEED_MENU", "true")
	t.Setenv("APP_LOCALE", "EN")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.Release())
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []byte("s3cret"), cfg.SessionSecret)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"https://pos.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedMenu)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
}

func TestFromEnvCollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "release")
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("APP_LOCALE", "fr")

	_, err := FromEnv()
	require.Error(t, err)
	for _, part := range []string{"DB_DRIVER", "DB_MAX_OPEN_CONNS", "SESSION_TTL", "APP_LOCALE", "SESSION_SECRET"} {
		assert.Contains(t, err.Error(), part)
	}
}
