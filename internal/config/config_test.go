package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("api")
	require.NoError(t, err)

	assert.Equal(t, "api", cfg.RunMode)
	assert.Equal(t, "8080", cfg.ApiPort)
	assert.Equal(t, "nl-NL", cfg.Locale)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, CapacityPolicyReject, cfg.CapacityPolicy)
	assert.Equal(t, SeedSourceBuiltin, cfg.SeedSource)
	assert.Equal(t, time.Hour, cfg.JwtTTL)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CAPACITY_POLICY", "Clamp")
	t.Setenv("LOCALE", "de-DE")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_TTL_SECONDS", "60")

	cfg, err := Load("all")
	require.NoError(t, err)
	assert.Equal(t, CapacityPolicyClamp, cfg.CapacityPolicy)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.Equal(t, time.Minute, cfg.JwtTTL)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("capacity policy", func(t *testing.T) {
		t.Setenv("CAPACITY_POLICY", "overbook")
		_, err := Load("api")
		assert.Error(t, err)
	})
	t.Run("file seed without path", func(t *testing.T) {
		t.Setenv("SEED_SOURCE", "file")
		_, err := Load("api")
		assert.Error(t, err)
	})
	t.Run("mongo seed without uri", func(t *testing.T) {
		t.Setenv("SEED_SOURCE", "mongo")
		_, err := Load("api")
		assert.Error(t, err)
	})
	t.Run("bad number", func(t *testing.T) {
		t.Setenv("REDIS_DB", "zero")
		_, err := Load("api")
		assert.Error(t, err)
	})
}

func TestRequireJwtSecret(t *testing.T) {
	assert.Error(t, (&Config{}).RequireJwtSecret())
	assert.NoError(t, (&Config{JwtSecret: "s3cret"}).RequireJwtSecret())
}
