package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV_FILE", "")

	cfg, err := GetClientConfig()

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultClientLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Adapter.Token)
}

func TestGetClientConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnvVars(t, map[string]string{
		"ENV_FILE":               "",
		"CLIENT_SERVER_ADDRESS":  "http://directory:8080",
		"CLIENT_REQUEST_TIMEOUT": "2s",
		"CLIENT_TOKEN":           "abc",
		"CLIENT_LOG_LEVEL":       "debug",
	})

	cfg, err := GetClientConfig()

	require.NoError(t, err)
	assert.Equal(t, "http://directory:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "abc", cfg.Adapter.Token)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGetClientConfig_BadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnvVars(t, map[string]string{
		"ENV_FILE":               "",
		"CLIENT_REQUEST_TIMEOUT": "soon",
	})

	_, err := GetClientConfig()

	require.Error(t, err)
}
