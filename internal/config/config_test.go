package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kounty-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_SESSION_TTL_MINUTES", "15")
	t.Setenv("COGNITO_REGION", "us-west-2")
	t.Setenv("COGNITO_USER_POOL_ID", "us-west-2_abc123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, 15*time.Minute, cfg.Redis.SessionTTL())
	assert.Equal(t,
		"https://cognito-idp.us-west-2.amazonaws.com/us-west-2_abc123/.well-known/jwks.json",
		cfg.Cognito.JWKSURL(),
	)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestJWKSRefreshIntervalFallsBackToHour(t *testing.T) {
	cfg := CognitoConfig{JWKSRefreshMinutes: 0}
	assert.Equal(t, time.Hour, cfg.JWKSRefreshInterval())

	cfg.JWKSRefreshMinutes = 5
	assert.Equal(t, 5*time.Minute, cfg.JWKSRefreshInterval())
}
