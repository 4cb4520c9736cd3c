// Package config handles configuration for the client, including defaults,
// JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	TransportREST = "rest"
	TransportGRPC = "grpc"
)

var (
	ErrUnknownTransport = errors.New("unknown transport")
	ErrMissingEndpoint  = errors.New("backend endpoint is not configured")
)

// Config holds runtime settings for the client.
//
// Fields:
//   - Transport: "rest" (Supabase-style HTTP) or "grpc".
//   - BackendURL / APIKey: REST base URL and project key; the key is sent on gRPC too.
//   - GRPCAddr: host:port of the gRPC backend.
//   - DataDir: where the local database and device key live; empty keeps everything in memory.
//   - InitData / BotToken: Telegram launch payload and the bot token used to
//     verify it locally. Both are optional.
//   - LoadingTimeout: how long loading may last before recovery is offered.
//   - SelfHealRetries / SignUpRetries: attempts for the two bounded retry loops.
type Config struct {
	Transport      string
	BackendURL     string
	APIKey         string
	GRPCAddr       string
	DataDir        string
	LogLevel       string
	BotUsername    string
	InitData       string
	BotToken       string
	LoadingTimeout time.Duration
	RequestTimeout time.Duration

	SelfHealRetries int
	SelfHealDelay   time.Duration
	SignUpRetries   int
	SignUpDelay     time.Duration

	AdDuration   time.Duration
	SpinDuration time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Transport = TransportREST
	c.BackendURL = "http://127.0.0.1:54321"
	c.GRPCAddr = "127.0.0.1:50051"
	c.DataDir = ".adearn"
	c.LogLevel = "info"
	c.BotUsername = "Earningcryptocurrencybot"
	c.LoadingTimeout = 8 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SelfHealRetries = 1
	c.SignUpRetries = 2
	c.SignUpDelay = 500 * time.Millisecond
	c.AdDuration = 5 * time.Second
	c.SpinDuration = 4 * time.Second
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

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportREST:
		if c.BackendURL == "" {
			return fmt.Errorf("%w: rest needs a backend URL", ErrMissingEndpoint)
		}
	case TransportGRPC:
		if c.GRPCAddr == "" {
			return fmt.Errorf("%w: grpc needs an address", ErrMissingEndpoint)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, c.Transport)
	}
	return nil
}
