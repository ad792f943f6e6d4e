package config

import "time"

// Config holds runtime settings for the RetailMediaAI CLI.
//
// Units: HeartbeatInterval is a time.Duration (e.g., time.Minute).
type Config struct {
	ServerURL         string
	Storage           string
	DSN               string
	HeartbeatInterval time.Duration
	LogLevel          string
	ExportDir         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Storage = "sqlite"
	c.DSN = "retailmedia.db"
	c.HeartbeatInterval = time.Minute
	c.LogLevel = "info"
	c.ExportDir = "exports"
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
