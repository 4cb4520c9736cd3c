package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-t", "grpc", "-u", "https://x.supabase.co", "-k", "anon", "-a", "backend:443",
				"-d", "/var/lib/adearn", "-l", "debug", "-b", "OtherBot", "-w", "12", "-r", "3",
				"-s", "123:ABC", "-init", "query_id=1&hash=ff",
			},
			expected: func() *Config {
				c := defaults()
				c.Transport = TransportGRPC
				c.BackendURL = "https://x.supabase.co"
				c.APIKey = "anon"
				c.GRPCAddr = "backend:443"
				c.DataDir = "/var/lib/adearn"
				c.LogLevel = "debug"
				c.BotUsername = "OtherBot"
				c.LoadingTimeout = 12 * time.Second
				c.RequestTimeout = 3 * time.Second
				c.BotToken = "123:ABC"
				c.InitData = "query_id=1&hash=ff"
				return c
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-v", "-t", "rest"},
			expected: defaults,
		},
		{
			name:        "bad number panics",
			args:        []string{"cmd", "-w", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}
