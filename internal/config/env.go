package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
// Values that do not parse are ignored.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKR_FILE"); v != "" {
		cfg.StoreFile = v
	}
	if v := os.Getenv("TASKR_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TASKR_ATOMIC_WRITE"); v != "" {
		cfg.AtomicWrite = boolFromString(v)
	}
	if v := os.Getenv("TASKR_DATE_ATTEMPTS"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.DateAttempts = i
		}
	}

	// Logging configuration
	if v := os.Getenv("TASKR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKR_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKR_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
