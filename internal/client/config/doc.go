// Package config loads runtime configuration for the SlabVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   origin of the grading API (no path)
//	-t int      request timeout (seconds)
//	-d string   path of the local session cache database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.slabvault.example",
//	  "request_timeout": "15s",
//	  "cache_db_path": "slabvault.db",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds the API endpoint, timeout, cache path and log level
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
