package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables keep precedence over it.
//
// Recognized variables:
//
//	SLABVAULT_API_URL     base URL of the grading API
//	SLABVAULT_TIMEOUT     request timeout in seconds
//	SLABVAULT_CACHE_DB    path of the session cache database
//	SLABVAULT_LOG_LEVEL   log level
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SLABVAULT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SLABVAULT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SLABVAULT_CACHE_DB"); v != "" {
		cfg.CacheDBPath = v
	}
	if v := os.Getenv("SLABVAULT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
