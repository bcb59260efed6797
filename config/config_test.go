package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsFromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "no-such-env")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://db:27017")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.ApiToken)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDB_ConnectionURI)
	assert.Equal(t, "8080", cfg.Address)
	assert.Equal(t, "test", cfg.MongoDB_DBName)
	assert.Equal(t, "UTC", cfg.Analytics_Timezone)
	assert.True(t, cfg.RateLimit_Enabled)
	assert.Equal(t, 100, cfg.RateLimit_Max)
	assert.Equal(t, 10, cfg.ShutdownTimeout)
}

func TestNewConfig_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "no-such-env")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://db:27017")
	t.Setenv("ANALYTICS_TIMEZONE", "Asia/Ho_Chi_Minh")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Analytics_Timezone)
	assert.False(t, cfg.RateLimit_Enabled)
}
