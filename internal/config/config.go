package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment     string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName    string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel        slog.Level
	RedisURL        string        `env:"REDIS_URL"`
	ConfigGroup     string        `env:"CONFIG_GROUP" envDefault:"mobkcoverlay"`
	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"600ms"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"50ms"`
	EventsEnabled   bool          `env:"EVENTS_ENABLED" envDefault:"false"`
	MetricsAddr     string        `env:"METRICS_ADDR"`
	LogFile         string        `env:"LOG_FILE" envDefault:"mobkc-console.log"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	if cfg.EventsEnabled && cfg.RedisURL == "" {
		return nil, fmt.Errorf("EVENTS_ENABLED requires REDIS_URL")
	}
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
