// Package config loads runtime configuration for the adearn terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//     Only the fields present in the file are applied.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "8s"
// or integer nanoseconds:
//
//	{
//	  "transport": "rest",
//	  "backend_url": "https://project.example.co",
//	  "api_key": "anon-key",
//	  "loading_timeout": "8s",
//	  "self_heal_retries": 1
//	}
//
// Primary API
//
//   - type Config: backend, host and timing settings
//   - func LoadConfig() *Config: builds Config by applying defaults, JSON, then flags
//   - func (*Config) Validate() error: rejects unknown transports and missing endpoints
package config
