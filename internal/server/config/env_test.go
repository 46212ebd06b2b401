package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("DEVCONNECTOR_SECRET_KEY", "from-env")
	t.Setenv("DEVCONNECTOR_TOKEN_VALIDITY", "72h")
	t.Setenv("DEVCONNECTOR_AUTH_RATE_LIMIT", "7")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 72*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 7, cfg.AuthRateLimit)
	assert.Equal(t, ":5000", cfg.EndpointAddrHTTP, "unset variables keep their value")
}

func Test_parseEnv_InvalidValuePanics(t *testing.T) {
	t.Setenv("DEVCONNECTOR_AUTH_RATE_LIMIT", "lots")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
