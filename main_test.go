package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 20, cfg.AssistantListLimit)
	assert.Equal(t, 3*time.Second, cfg.RunPollInterval)
	assert.Equal(t, 15*time.Second, cfg.RunPollMaxInterval)
	assert.Equal(t, 5*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.EqualValues(t, 20<<20, cfg.UploadMaxBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("RUN_POLL_INTERVAL", "20s")
	t.Setenv("RUN_POLL_MAX_INTERVAL", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_NO_COLOR", "true")

	cfg, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.OpenAIToken)
	assert.Equal(t, 20*time.Second, cfg.RunPollMaxInterval, "max interval is never below the first one")
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.LogNoColor)
}

func TestParseConfigInvalid(t *testing.T) {
	t.Setenv("RUN_TIMEOUT", "soon")

	_, err := parseConfig()
	assert.Error(t, err)
}

func TestSetupWorkers(t *testing.T) {
	cfg, err := parseConfig()
	require.NoError(t, err)

	group := setupWorkers(cfg)
	require.Len(t, group, 2)
	assert.Equal(t, "http_server", group[0].Name())
	assert.Equal(t, "session_janitor", group[1].Name())
}
