package config

import (
	"encoding/json"
	"os"

	"github.com/benayed0/loopa-pro/internal/flagx"
	"github.com/benayed0/loopa-pro/internal/timex"
)

// JsonConfig is the DTO read from the -c/-config file. Only keys present in
// the file override the current values.
type JsonConfig struct {
	EndpointAddr                *string         `json:"endpoint_addr"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	MagicLinkValidityDuration   *timex.Duration `json:"magic_link_validity_duration"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays config with the JSON file named by -c or -config, if
// any. It panics when the file cannot be read or decoded.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.MagicLinkValidityDuration != nil {
		config.MagicLinkValidityDuration = c.MagicLinkValidityDuration.Duration
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
