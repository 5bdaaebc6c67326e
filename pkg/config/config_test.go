package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("UW_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "test-key", cfg.UnusualWhales.APIKey)
	assert.Equal(t, "https://api.unusualwhales.com", cfg.UnusualWhales.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.UnusualWhales.RequestInterval)
	assert.Equal(t, 30*time.Second, cfg.UnusualWhales.Timeout)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("UW_REQUEST_INTERVAL", "250ms")
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.UnusualWhales.RequestInterval)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("UW_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UW_API_KEY")
}

func TestLoad_InvalidEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "qa")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV")
}

func TestLoad_InvalidPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_NonNumericPortFallsBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Port)
}

func TestGetEnvAsDuration_BadValueFallsBack(t *testing.T) {
	t.Setenv("SOME_INTERVAL", "fast")
	assert.Equal(t, 100*time.Millisecond, getEnvAsDuration("SOME_INTERVAL", "100ms"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_COUNT", "42")
	assert.Equal(t, 42, getEnvAsInt("SOME_COUNT", 7))

	t.Setenv("SOME_COUNT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("SOME_COUNT", 7))

	t.Setenv("SOME_COUNT", "")
	assert.Equal(t, 7, getEnvAsInt("SOME_COUNT", 7))
}
