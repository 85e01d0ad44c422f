// Package config provides the configuration management for the chainorder
// application. This file contains environment variable overrides.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvFloat64 returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as float64, or the default value if not
// set or invalid.
func getEnvFloat64(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > File > Defaults.
//
// Supported environment variables:
//   - CHAINORDER_DIMS: Dimension sequence (string: "10,30,5,60")
//   - CHAINORDER_ALGO: Strategy (string: bottomup, memo, all)
//   - CHAINORDER_PORT: Port for server mode (string)
//   - CHAINORDER_TIMEOUT: Solve timeout (duration: "1m", "30s")
//   - CHAINORDER_STREAM_DELAY: Pause between streamed trace lines (duration)
//   - CHAINORDER_MAX_MATRICES: Largest accepted chain (int)
//   - CHAINORDER_RATE_LIMIT: Requests per second per client (float)
//   - CHAINORDER_RATE_BURST: Burst per client (int)
//   - CHAINORDER_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - CHAINORDER_JSON: Enable JSON output (bool)
//   - CHAINORDER_TRACE: Print the DP trace (bool)
//   - CHAINORDER_TABLES: Print the DP tables (bool)
//   - CHAINORDER_QUIET: Enable quiet mode (bool)
//   - CHAINORDER_INTERACTIVE: Enable interactive REPL mode (bool)
//   - CHAINORDER_NO_COLOR: Disable colored output (bool)
//   - CHAINORDER_OUTPUT: Output file path (string)
//   - CHAINORDER_CONFIG: TOML configuration file (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "max-matrices") {
		config.MaxMatrices = getEnvInt("MAX_MATRICES", config.MaxMatrices)
	}
	if !isFlagSet(fs, "rate-limit") {
		config.RateLimit = getEnvFloat64("RATE_LIMIT", config.RateLimit)
	}
	if !isFlagSet(fs, "rate-burst") {
		config.RateBurst = getEnvInt("RATE_BURST", config.RateBurst)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "stream-delay") {
		config.StreamDelay = getEnvDuration("STREAM_DELAY", config.StreamDelay)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "dims") && !isFlagSet(fs, "d") {
		config.DimsRaw = getEnvString("DIMS", config.DimsRaw)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "trace") {
		config.ShowTrace = getEnvBool("TRACE", config.ShowTrace)
	}
	if !isFlagSet(fs, "tables") {
		config.ShowTables = getEnvBool("TABLES", config.ShowTables)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
