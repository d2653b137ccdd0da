// Package config handles configuration for the ContactDesk CLI client:
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ContactDesk CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - WebsocketURL: push endpoint for live contact updates.
//   - StateDir: directory holding the persisted session identity.
//   - RequestTimeout: per-request timeout for CRUD calls.
type Config struct {
	ServerBaseURL  string
	WebsocketURL   string
	StateDir       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.WebsocketURL = "ws://127.0.0.1:8080/ws"
	c.StateDir = ".contactdesk"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
