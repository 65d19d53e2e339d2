// Package config provides configuration management for the Tally stub daemon.
//
// This package implements the configuration system for tallyd, the development
// endpoint that answers pipeline submissions with rule-based verdicts. It
// centralizes network bind settings, the review warning threshold, and logging
// configuration so the daemon command stays thin.
//
// Unlike a production pipeline the stub daemon keeps all state in memory, so
// configuration is limited to the HTTP bind address, the threshold above which
// review rounds warn, and the log level.
package config

import (
	"github.com/shopspring/decimal"

	configDefaults "github.com/tally-dev/tally/internal/config"
)

const (
	// DefaultBind is the default HTTP bind address for the pipeline endpoint.
	DefaultBind = "0.0.0.0:8350"

	// DefaultLogLevel is the default daemon log level.
	DefaultLogLevel = configDefaults.DefaultLogLevel

	// DefaultWarnThreshold mirrors the shared default amount threshold.
	DefaultWarnThreshold = configDefaults.DefaultWarnThreshold
)

// Config holds all daemon configuration values.
type Config struct {
	BindAddr      string // HTTP bind address (host part, derived from --bind)
	BindPort      int    // HTTP bind port (derived from --bind)
	RawBind       string // Raw --bind value before parsing
	LogLevel      string // Log level: DEBUG, INFO, WARN, ERROR
	WarnThreshold string // Review warning threshold as a decimal string

	// Threshold is the parsed WarnThreshold, populated by ValidateConfig.
	Threshold decimal.Decimal
}

// Global configuration instance used across the daemon.
var Global = Config{
	RawBind:       DefaultBind,
	LogLevel:      DefaultLogLevel,
	WarnThreshold: DefaultWarnThreshold,
}
