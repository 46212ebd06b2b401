// Package config handles configuration for the API server, including
// defaults, a JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/common"
)

// Config holds runtime settings for the devconnector API server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Required.
//   - TokenValidityDuration: access token lifetime.
//   - RequestTimeout: per-request deadline applied by the router.
//   - AuthRateLimit: register/login requests allowed per client IP per minute.
//   - S3*: object storage used for custom avatar uploads.
type Config struct {
	EndpointAddrHTTP      string        `envconfig:"ADDR"`
	DatabaseDSN           string        `envconfig:"DATABASE_DSN"`
	SecretKey             string        `envconfig:"SECRET_KEY"`
	TokenValidityDuration time.Duration `envconfig:"TOKEN_VALIDITY"`
	RequestTimeout        time.Duration `envconfig:"REQUEST_TIMEOUT"`
	AuthRateLimit         int           `envconfig:"AUTH_RATE_LIMIT"`
	LogLevel              string        `envconfig:"LOG_LEVEL"`
	S3AccessKey           string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey           string        `envconfig:"S3_SECRET_KEY"`
	S3Bucket              string        `envconfig:"S3_BUCKET"`
	S3Region              string        `envconfig:"S3_REGION"`
	S3BaseEndpoint        string        `envconfig:"S3_BASE_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults. There is no
// default secret: the server refuses to start without one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = common.TokenValidityDuration
	c.RequestTimeout = 30 * time.Second
	c.AuthRateLimit = 20
	c.LogLevel = "info"
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate reports configuration that must abort startup.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return common.ErrMissingSecret
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity must be positive")
	}
	return nil
}

// AvatarUploadsEnabled reports whether object storage credentials are set.
func (c *Config) AvatarUploadsEnabled() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
