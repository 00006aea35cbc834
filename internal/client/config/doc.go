// Package config loads runtime configuration for the Loopa Pro console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   backend base URL
//	-d string   local credential database path
//	-l string   web console listen address
//	-t int      backend request timeout (seconds)
//	-w int      bootstrap wait (seconds)
//	-v string   log level
//
// # JSON schema
//
//	{
//	  "backend_url": "http://localhost:3000",
//	  "database_path": "data/console.db",
//	  "listen_addr": "127.0.0.1:4200",
//	  "request_timeout": "10s",
//	  "bootstrap_wait": "5s",
//	  "log_level": "info"
//	}
package config
