package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration, populated from the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`

	// MCP server identity: one game instance is pinned per server id.
	ServerID     string `env:"SERVER_ID" envDefault:"server1"`
	ServerName   string `env:"SERVER_NAME"`
	ScenarioPath string `env:"SCENARIO_PATH" envDefault:"./data/scenarios/manor.json"`

	LogLevel slog.Level `env:"-"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	if cfg.ServerName == "" {
		cfg.ServerName = "Game Server " + cfg.ServerID
	}
	return cfg, nil
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
