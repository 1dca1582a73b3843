package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"CLIENT_"`

	// LogLevel is the minimal level of the client's own logs.
	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"CLIENT_LOG_LEVEL"`
}

// ClientAdapter holds the settings used to reach the directory server.
type ClientAdapter struct {
	// HTTPAddress is the server base URL or "host:port".
	// Env: CLIENT_SERVER_ADDRESS
	HTTPAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds every request to the server.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is a bearer token reused instead of logging in.
	// Env: CLIENT_TOKEN
	Token string `env:"TOKEN"`
}

// DefaultClientLogLevel keeps the client quiet unless asked otherwise.
const DefaultClientLogLevel = "warn"

// GetClientConfig reads the client configuration from the environment
// (after the optional .env file) and fills the gaps with defaults.
func GetClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	defaults := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		LogLevel: DefaultClientLogLevel,
	}
	if err := mergo.Merge(cfg, defaults); err != nil {
		return nil, fmt.Errorf("error merging client configs: %w", err)
	}

	return cfg, nil
}
