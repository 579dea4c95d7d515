package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "CONFIG_GROUP", "TICK_INTERVAL", "REFRESH_INTERVAL", "EVENTS_ENABLED", "METRICS_ADDR", "LOG_FILE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, "mobkcoverlay", cfg.ConfigGroup)
	assert.Equal(t, 600*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.RefreshInterval)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, "mobkc-console.log", cfg.LogFile)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("CONFIG_GROUP", "alt")
	t.Setenv("TICK_INTERVAL", "1s")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("METRICS_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "alt", cfg.ConfigGroup)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.True(t, cfg.EventsEnabled)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad duration", env: map[string]string{"TICK_INTERVAL": "soon"}},
		{name: "zero tick", env: map[string]string{"TICK_INTERVAL": "0s"}},
		{name: "events without redis", env: map[string]string{"EVENTS_ENABLED": "true", "REDIS_URL": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}
