// Package config handles configuration validation for the Tally stub daemon.
//
// Validation transforms raw CLI values into normalized, validated forms before
// the HTTP endpoint starts: the bind address is split into host and port, the
// log level is checked against the supported set, and the warning threshold is
// parsed into a decimal amount. This prevents runtime failures from malformed
// addresses or thresholds after the server is already listening.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/validate"
)

// InitializeConfig applies environment variable overrides before validation.
func InitializeConfig() {
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}
}

// ValidateConfig validates and normalizes all daemon configuration values.
//
// Returns an error with descriptive context for any invalid value so the
// daemon fails fast instead of binding with a broken configuration.
func ValidateConfig() error {
	host, port, err := validate.SplitHostPort(Global.RawBind)
	if err != nil {
		logging.Error("Invalid bind address '%s': %v", Global.RawBind, err)
		return fmt.Errorf("invalid bind address: %w", err)
	}
	if host == "" {
		host = "0.0.0.0"
	}
	Global.BindAddr = host
	Global.BindPort = port

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	threshold, err := decimal.NewFromString(Global.WarnThreshold)
	if err != nil {
		logging.Error("Invalid warn threshold '%s': %v", Global.WarnThreshold, err)
		return fmt.Errorf("invalid warn threshold %q: %w", Global.WarnThreshold, err)
	}
	if threshold.IsNegative() {
		return fmt.Errorf("warn threshold must not be negative, got: %s", threshold)
	}
	Global.Threshold = threshold

	return nil
}
