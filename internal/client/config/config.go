package config

import "time"

// Config holds runtime settings for the taskctl client.
//
// Fields:
//   - ServerURL: base URL of the task manager API.
//   - SessionDB: path of the local SQLite file holding the session token.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.SessionDB = "taskctl.db"
	c.RequestTimeout = 10 * time.Second
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
