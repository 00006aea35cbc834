package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		start       *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-b", "https://api.example", "-d", ":memory:", "-l", "127.0.0.1:9000", "-t", "3", "-w", "1", "-v", "debug"},
			expected: &Config{BackendURL: "https://api.example", DatabasePath: ":memory:", ListenAddr: "127.0.0.1:9000",
				RequestTimeout: 3 * time.Second, BootstrapWait: time.Second, LogLevel: "debug"}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-b", "http://x"},
			expected: &Config{BackendURL: "http://x"}},
		{name: "absent duration flags keep current values", args: []string{"cmd", "-v", "warn"},
			start:    &Config{RequestTimeout: 250 * time.Millisecond, BootstrapWait: 1500 * time.Millisecond},
			expected: &Config{RequestTimeout: 250 * time.Millisecond, BootstrapWait: 1500 * time.Millisecond, LogLevel: "warn"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}
			if tt.start != nil {
				*config = *tt.start
			}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
