package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataSource       string
	DataSheet        string
	Port             string
	HTTPTimeout      time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         slog.Level
	MetricsNamespace string
}

// FromEnv reads an optional .env file and then the process environment.
func FromEnv() Config {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	shutdown := 10 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			shutdown = d
		}
	}
	return Config{
		DataSource:       envOr("DATA_SOURCE", "./1acre.xlsx"),
		DataSheet:        envOr("DATA_SHEET", "Sheet1 (2)"),
		Port:             envOr("PORT", "8080"),
		HTTPTimeout:      to,
		ShutdownTimeout:  shutdown,
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		MetricsNamespace: envOr("METRICS_NAMESPACE", "campaign_dash"),
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
