package config

import (
	"flag"
	"os"
	"time"

	"github.com/benayed0/loopa-pro/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   backend base URL
//	-d string   path of the local credential database
//	-l string   listen address of the web console ("" disables it)
//	-t int      backend request timeout in seconds
//	-w int      bootstrap wait before guards are evaluated, in seconds
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags meant for other
// parsers (-c) do not break this one. Durations are only overwritten when
// their flag is given, so sub-second values from JSON survive.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-l", "-t", "-w", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local credential database")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "web console listen address")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	bootstrapWait := fs.Int("w", int(cfg.BootstrapWait.Seconds()), "bootstrap wait (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "w":
			cfg.BootstrapWait = time.Duration(*bootstrapWait) * time.Second
		}
	})
}
