package config

import "time"

// Config holds runtime settings for the LearnPath CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - RefreshLead: how long before token expiry the background refresh runs.
//   - DatabasePath: location of the local credentials database.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RefreshLead    time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.RefreshLead = 5 * time.Minute
	c.DatabasePath = "data/lmscli.db"
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
