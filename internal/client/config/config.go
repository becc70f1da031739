package config

import "time"

// Config holds runtime settings for the SlabVault CLI.
//
// Fields:
//   - APIBaseURL: origin of the grading API, without a path; the
//     endpoint paths already carry the /api prefix.
//   - RequestTimeout: per-request deadline for API calls.
//   - CacheDBPath: path of the sqlite session cache database.
//   - LogLevel: minimum level for the text logger (debug, info, warn, error).
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CacheDBPath    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.CacheDBPath = "slabvault.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
