package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 120*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 20, c.AuthRateLimit)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "avatars", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.False(t, c.AvatarUploadsEnabled())
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.Validate()
	require.ErrorIs(t, err, common.ErrMissingSecret)

	c.SecretKey = "jwtSecret"
	require.NoError(t, c.Validate())

	c.TokenValidityDuration = 0
	require.Error(t, c.Validate())
}

func TestAvatarUploadsEnabled(t *testing.T) {
	c := Config{S3AccessKey: "minio", S3SecretKey: "minio123", S3Bucket: "avatars"}
	assert.True(t, c.AvatarUploadsEnabled())

	c.S3SecretKey = ""
	assert.False(t, c.AvatarUploadsEnabled())
}
