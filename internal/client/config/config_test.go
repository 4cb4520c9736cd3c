package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, TransportREST, c.Transport)
	assert.Equal(t, "http://127.0.0.1:54321", c.BackendURL)
	assert.Equal(t, "127.0.0.1:50051", c.GRPCAddr)
	assert.Equal(t, ".adearn", c.DataDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "Earningcryptocurrencybot", c.BotUsername)
	assert.Equal(t, 8*time.Second, c.LoadingTimeout)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 1, c.SelfHealRetries)
	assert.Equal(t, 2, c.SignUpRetries)
	assert.Equal(t, 5*time.Second, c.AdDuration)
	assert.Equal(t, 4*time.Second, c.SpinDuration)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("ADEARN_CONFIG", "")
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, defaults(), c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"grpc", func(c *Config) { c.Transport = TransportGRPC }, nil},
		{"rest without url", func(c *Config) { c.BackendURL = "" }, ErrMissingEndpoint},
		{"grpc without addr", func(c *Config) { c.Transport = TransportGRPC; c.GRPCAddr = "" }, ErrMissingEndpoint},
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }, ErrUnknownTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}
