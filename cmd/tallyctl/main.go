// Package main provides the entry point for the Tally CLI tool (tallyctl).
//
// This package implements the main executable for the transaction submission
// CLI that drives candidate batches through a payment pipeline endpoint. The
// CLI provides commands for reviewing batches (annotation only), committing
// them, and checking endpoint connectivity.
//
// INITIALIZATION FLOW:
// 1. Command structure setup (review, commit, health)
// 2. Flag configuration for global and command-specific options
// 3. Handler assignment linking commands to the review core and API client
// 4. Configuration validation via PersistentPreRunE
// 5. Command execution with proper error handling and exit codes
//
// The CLI follows kubectl-style patterns with consistent interfaces and
// comprehensive help text.
package main

import (
	"os"

	"github.com/tally-dev/tally/cmd/tallyctl/commands"
	"github.com/tally-dev/tally/cmd/tallyctl/config"
	"github.com/tally-dev/tally/cmd/tallyctl/handlers"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.Endpoint, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output, config.DefaultEndpoint)

	// Setup batch command flags
	reviewCmd, commitCmd := commands.GetBatchCommands()
	commands.SetupBatchFlags(reviewCmd, commitCmd,
		&config.Review.Sections, &config.Commit.Sections, &config.Commit.ForceSkip, &config.Commit.NoReview)

	// Setup command handlers
	reviewCmd.RunE = handlers.HandleReview
	commitCmd.RunE = handlers.HandleCommit
	commands.GetHealthCommand().RunE = handlers.HandleHealth
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
