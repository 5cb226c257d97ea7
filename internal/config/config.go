package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	DataDir     string
	WorldFile   string
	Environment string
	LogLevel    slog.Level
	LogFile     string
}

func Load() *Config {
	return &Config{
		DataDir:     getEnv("DATA_DIR", "./data"),
		WorldFile:   getEnv("WORLD_FILE", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", ""),
	}
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
