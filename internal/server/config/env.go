package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix namespaces the environment variables read by parseEnv,
// e.g. DEVCONNECTOR_SECRET_KEY.
const EnvPrefix = "DEVCONNECTOR"

// parseEnv overlays environment variables onto config. Unset variables
// leave the current value untouched; a malformed value panics.
func parseEnv(config *Config) {
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
