package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/sharing")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "./data/photos", cfg.PhotoStoragePath)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdle)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "postgres://localhost:5432/sharing")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadProductionDefaultsToJSONLogs(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)

	t.Setenv("JWT_ACCESS_TOKEN_TTL", "sometimes")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("RATE_LIMIT_RPS", "-3")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_RPS", "10")
	t.Setenv("DB_MAX_CONNS", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MAX_CONN_IDLE", "forever")
	_, err = Load()
	assert.Error(t, err)
}
