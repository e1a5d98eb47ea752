package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// config is read from the environment after .env has been loaded.
type config struct {
	Addr            string
	LogLevel        string
	LogsExport      bool
	ShutdownTimeout time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:            envOr("CALC_ADDR", ":8080"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		ShutdownTimeout: 5 * time.Second,
	}

	if v := os.Getenv("OTEL_LOGS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return config{}, fmt.Errorf("OTEL_LOGS_ENABLED: %w", err)
		}
		cfg.LogsExport = enabled
	}

	if v := os.Getenv("CALC_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("CALC_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
