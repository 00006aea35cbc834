package config

import (
	"encoding/json"
	"os"

	"github.com/benayed0/loopa-pro/internal/flagx"
	"github.com/benayed0/loopa-pro/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration, so the file may say "3s" or give integer
// nanoseconds.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	DatabasePath   *string         `json:"database_path"`
	ListenAddr     *string         `json:"listen_addr"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	BootstrapWait  *timex.Duration `json:"bootstrap_wait"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with the fields present in the JSON file named
// by -c or -config. Absent keys keep their current value, so an explicit
// "listen_addr": "" still disables the web console.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendURL != nil {
		cfg.BackendURL = *jc.BackendURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.ListenAddr != nil {
		cfg.ListenAddr = *jc.ListenAddr
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.BootstrapWait != nil {
		cfg.BootstrapWait = jc.BootstrapWait.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
