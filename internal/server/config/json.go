package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophqa/internal/flagx"
	"github.com/dmitrijs2005/gophqa/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "1s" strings and integer nanoseconds are accepted.
// Keys absent from the file leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string        `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`

	ModerationURL         string         `json:"moderation_url"`
	ModerationAPIKey      string         `json:"moderation_api_key"`
	ModerationMaxAttempts int            `json:"moderation_max_attempts"`
	ModerationBaseDelay   timex.Duration `json:"moderation_base_delay"`
	ModerationMaxDelay    timex.Duration `json:"moderation_max_delay"`
	ModerationTimeout     timex.Duration `json:"moderation_timeout"`
	ModerationRateLimit   float64        `json:"moderation_rate_limit"`

	LogFormat string `json:"log_format"`
	LogLevel  string `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}

	setString(&config.ModerationURL, c.ModerationURL)
	setString(&config.ModerationAPIKey, c.ModerationAPIKey)
	if c.ModerationMaxAttempts > 0 {
		config.ModerationMaxAttempts = c.ModerationMaxAttempts
	}
	if c.ModerationBaseDelay.Duration > 0 {
		config.ModerationBaseDelay = c.ModerationBaseDelay.Duration
	}
	if c.ModerationMaxDelay.Duration > 0 {
		config.ModerationMaxDelay = c.ModerationMaxDelay.Duration
	}
	if c.ModerationTimeout.Duration > 0 {
		config.ModerationTimeout = c.ModerationTimeout.Duration
	}
	if c.ModerationRateLimit > 0 {
		config.ModerationRateLimit = c.ModerationRateLimit
	}

	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
