package config

import "time"

// Config holds runtime settings for the BiteCart CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend REST API.
//   - DatabaseDSN: path of the local SQLite session database.
//   - HydrateTimeout: how long startup session restore may take before the
//     app proceeds with whatever state has landed.
//
// Units: HydrateTimeout is a time.Duration (e.g., 5*time.Second).
type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	HydrateTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8885"
	c.DatabaseDSN = "bitecart.db"
	c.HydrateTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
