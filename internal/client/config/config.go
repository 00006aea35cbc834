package config

import "time"

// Config holds runtime settings for the Loopa Pro console.
//
// Fields:
//   - BackendURL: base URL of the Loopa REST backend.
//   - DatabasePath: sqlite file holding the stored credential (":memory:" keeps nothing).
//   - ListenAddr: address of the local web console; empty disables it.
//   - RequestTimeout: upper bound for a single backend call.
//   - BootstrapWait: how long navigation waits for the startup session check.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BackendURL     string
	DatabasePath   string
	ListenAddr     string
	RequestTimeout time.Duration
	BootstrapWait  time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:3000"
	c.DatabasePath = "data/console.db"
	c.ListenAddr = "127.0.0.1:4200"
	c.RequestTimeout = 10 * time.Second
	c.BootstrapWait = 5 * time.Second
	c.LogLevel = "info"
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
