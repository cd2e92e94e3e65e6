package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables recognised by parseEnv.
const (
	EnvHTTPAddr              = "QA_HTTP_ADDR"
	EnvGRPCAddr              = "QA_GRPC_ADDR"
	EnvDatabaseDSN           = "QA_DATABASE_DSN"
	EnvSecretKey             = "QA_SECRET_KEY"
	EnvTokenValidity         = "QA_TOKEN_VALIDITY"
	EnvModerationURL         = "QA_MODERATION_URL"
	EnvModerationAPIKey      = "QA_MODERATION_API_KEY"
	EnvModerationMaxAttempts = "QA_MODERATION_MAX_ATTEMPTS"
	EnvLogFormat             = "QA_LOG_FORMAT"
	EnvLogLevel              = "QA_LOG_LEVEL"
)

// parseEnv overlays values from the process environment. Set but malformed
// numeric values panic, like a bad config file.
func parseEnv(config *Config) {
	lookupString(EnvHTTPAddr, &config.EndpointAddrHTTP)
	lookupString(EnvGRPCAddr, &config.EndpointAddrGRPC)
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	lookupString(EnvSecretKey, &config.SecretKey)
	lookupString(EnvModerationURL, &config.ModerationURL)
	lookupString(EnvModerationAPIKey, &config.ModerationAPIKey)
	lookupString(EnvLogFormat, &config.LogFormat)
	lookupString(EnvLogLevel, &config.LogLevel)

	if v := os.Getenv(EnvTokenValidity); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvTokenValidity, err))
		}
		config.AccessTokenValidityDuration = d
	}

	if v := os.Getenv(EnvModerationMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvModerationMaxAttempts, err))
		}
		config.ModerationMaxAttempts = n
	}
}

func lookupString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
