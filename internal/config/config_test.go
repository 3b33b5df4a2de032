package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ArticlesApp", cfg.JWT.Issuer)
	assert.Equal(t, 60*time.Minute, cfg.JWT.AccessTokenTTL())
	assert.Equal(t, 0.5, cfg.Search.MinScore)
	assert.Equal(t, 1000, cfg.Search.MaxCandidates)
	assert.Equal(t, "article:", cfg.Search.KeyPrefix)
	assert.Equal(t, cfg.Redis.Host, cfg.Search.Addr)
	assert.Equal(t, "*/30 * * * *", cfg.Reconcile.Schedule)
}

func TestLoad_InvalidSchedule(t *testing.T) {
	t.Setenv("RECONCILE_SCHEDULE", "every now and then")

	_, err := Load()

	assert.ErrorContains(t, err, "RECONCILE_SCHEDULE")
}

func TestLoad_EmptyScheduleDisablesReconcile(t *testing.T) {
	cfg := &Config{
		JWT:       JWTConfig{Secret: "x", AccessTokenExpiry: 60},
		Search:    SearchConfig{MaxCandidates: 10},
		Reconcile: ReconcileConfig{BatchSize: 10},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_FLOAT", "0.75")
	t.Setenv("X_BOOL", "false")
	t.Setenv("X_DUR", "250ms")
	t.Setenv("X_BAD", "nope")

	assert.Equal(t, 0.75, getEnvFloat("X_FLOAT", 0))
	assert.False(t, getEnvBool("X_BOOL", true))
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("X_DUR", time.Second))
	assert.Equal(t, 3, getEnvInt("X_BAD", 3))
}
