// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Development only.
//   - AccessTokenValidityDuration: lifetime of a minted access token.
//   - MagicLinkValidityDuration: how long an issued magic token can be redeemed.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	MagicLinkValidityDuration   time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside a laptop.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.MagicLinkValidityDuration = 10 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
