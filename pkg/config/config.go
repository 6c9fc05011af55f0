// Package config reads the handful of environment variables the
// daemons need to boot. There is no configuration file; everything a
// daemon needs at startup fits in the environment.
package config

import "os"

const (
	// EnvDBURL names the state-store URL environment variable.
	EnvDBURL = "RACOON_DB_URL"
	// EnvSAILibraryPath names the vendor library path environment
	// variable.
	EnvSAILibraryPath = "SAI_LIBRARY_PATH"
	// EnvLogLevel names the log level environment variable.
	EnvLogLevel = "RACOON_LOG_LEVEL"
	// EnvLogFormat names the log format environment variable ("text" or
	// "json").
	EnvLogFormat = "RACOON_LOG_FORMAT"
	// EnvMetricsAddr names the metrics listen address environment
	// variable.
	EnvMetricsAddr = "RACOON_METRICS_ADDR"
	// EnvSwitchID names the hardware switch object ID environment
	// variable, expressed as a 0x-prefixed hex string.
	EnvSwitchID = "RACOON_SWITCH_ID"

	// DefaultDBURL is used when EnvDBURL is unset.
	DefaultDBURL = "redis://127.0.0.1:6379"
	// DefaultSAILibraryPath is used when EnvSAILibraryPath is unset.
	DefaultSAILibraryPath = "/usr/lib/libsai.so"
	// DefaultLogLevel is used when EnvLogLevel is unset.
	DefaultLogLevel = "info"
	// DefaultLogFormat is used when EnvLogFormat is unset.
	DefaultLogFormat = "text"
	// DefaultMetricsAddr is used when EnvMetricsAddr is unset.
	DefaultMetricsAddr = "127.0.0.1:9108"
	// DefaultSwitchID is the switch object ID assumed when no SAI
	// initialization path reports one, matching the fixed default the
	// reference daemon uses in the absence of real hardware discovery.
	DefaultSwitchID = "0x21000000000000"
)

// Config holds the process-level settings read from the environment.
type Config struct {
	DBURL          string
	SAILibraryPath string
	LogLevel       string
	LogFormat      string
	MetricsAddr    string
	SwitchID       string
}

// Load reads Config from the environment, applying defaults for any
// variable that is unset or empty.
func Load() Config {
	return Config{
		DBURL:          getEnvOr(EnvDBURL, DefaultDBURL),
		SAILibraryPath: getEnvOr(EnvSAILibraryPath, DefaultSAILibraryPath),
		LogLevel:       getEnvOr(EnvLogLevel, DefaultLogLevel),
		LogFormat:      getEnvOr(EnvLogFormat, DefaultLogFormat),
		MetricsAddr:    getEnvOr(EnvMetricsAddr, DefaultMetricsAddr),
		SwitchID:       getEnvOr(EnvSwitchID, DefaultSwitchID),
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
