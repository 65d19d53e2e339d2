// Package config provides configuration management for the tallyctl CLI.
package config

import "github.com/tally-dev/tally/internal/version"

const (
	DefaultEndpoint = "127.0.0.1:8350" // Default pipeline endpoint address (routable)
)

// Version returns the current tallyctl CLI version from the centralized version package
var Version = version.TallyctlVersion

// Global holds the global CLI configuration
var Global struct {
	Endpoint string // Address of the pipeline endpoint to submit against
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Review holds the review command configuration
var Review struct {
	Sections []string // Restrict the round trip to these sections
}

// Commit holds the commit command configuration
var Commit struct {
	Sections  []string // Restrict the round trip to these sections
	ForceSkip bool     // Override suggest-skip verdicts (do_not_skip)
	NoReview  bool     // Skip the review round and commit immediately
}
