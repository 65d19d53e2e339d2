// Package config provides shared configuration defaults for Tally components.
// Centralizes values that both the tallyd stub daemon and the tallyctl CLI
// need to agree on, so the out-of-the-box experience is a working local loop.
package config

const (
	// DefaultBindAddr is the default bind address for the stub daemon.
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default HTTP port for the pipeline endpoint.
	DefaultAPIPort = 8350

	// DefaultLogLevel is the default logging level for all components.
	DefaultLogLevel = "INFO"

	// DefaultWarnThreshold is the amount above which the stub endpoint
	// issues a suggest-skip warning on review. Expressed as a decimal
	// string in the batch currency.
	DefaultWarnThreshold = "2500.00"
)
