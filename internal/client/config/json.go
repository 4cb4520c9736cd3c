package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/adearn/internal/flagx"
	"github.com/dmitrijs2005/adearn/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration so
// both "8s" and integer nanoseconds are accepted. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	Transport       string          `json:"transport"`
	BackendURL      string          `json:"backend_url"`
	APIKey          string          `json:"api_key"`
	GRPCAddr        string          `json:"grpc_addr"`
	DataDir         string          `json:"data_dir"`
	LogLevel        string          `json:"log_level"`
	BotUsername     string          `json:"bot_username"`
	InitData        string          `json:"init_data"`
	BotToken        string          `json:"bot_token"`
	LoadingTimeout  *timex.Duration `json:"loading_timeout"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	SelfHealRetries *int            `json:"self_heal_retries"`
	SelfHealDelay   *timex.Duration `json:"self_heal_delay"`
	SignUpRetries   *int            `json:"sign_up_retries"`
	SignUpDelay     *timex.Duration `json:"sign_up_delay"`
	AdDuration      *timex.Duration `json:"ad_duration"`
	SpinDuration    *timex.Duration `json:"spin_duration"`
}

// parseJson loads the file named by -c/-config (or $ADEARN_CONFIG) into
// config. It panics when the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.Transport, c.Transport)
	setString(&config.BackendURL, c.BackendURL)
	setString(&config.APIKey, c.APIKey)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DataDir, c.DataDir)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.BotUsername, c.BotUsername)
	setString(&config.InitData, c.InitData)
	setString(&config.BotToken, c.BotToken)

	if c.LoadingTimeout != nil {
		config.LoadingTimeout = c.LoadingTimeout.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.SelfHealRetries != nil {
		config.SelfHealRetries = *c.SelfHealRetries
	}
	if c.SelfHealDelay != nil {
		config.SelfHealDelay = c.SelfHealDelay.Duration
	}
	if c.SignUpRetries != nil {
		config.SignUpRetries = *c.SignUpRetries
	}
	if c.SignUpDelay != nil {
		config.SignUpDelay = c.SignUpDelay.Duration
	}
	if c.AdDuration != nil {
		config.AdDuration = c.AdDuration.Duration
	}
	if c.SpinDuration != nil {
		config.SpinDuration = c.SpinDuration.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
