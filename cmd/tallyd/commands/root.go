// Package commands provides the CLI command structure for the Tally daemon.
//
// This package implements the root command for tallyd, the stub pipeline
// endpoint that reviews and commits transaction batches submitted by tallyctl.
// It manages the flag system and the validation pipeline that runs before the
// HTTP server starts.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/cmd/tallyd/config"
	"github.com/tally-dev/tally/cmd/tallyd/daemon"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/version"
)

// RootCmd is the root command for the Tally daemon.
var RootCmd = &cobra.Command{
	Use:   "tallyd",
	Short: "Stub pipeline endpoint for reviewing and committing transaction batches",
	Long: `Tally daemon (tallyd) provides a rule-based pipeline endpoint for development.

It accepts batch submissions from tallyctl, validates each transaction against
the record schema, and answers with per-transaction verdicts: commit, suggest
skip, or discard. Commit rounds mark clean transactions as committed and reject
resubmissions of already-committed ids.

All state is in memory; restarting the daemon forgets every committed id.`,
	Version:      version.TallydVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start with defaults (0.0.0.0:8350)
  tallyd

  # Bind to localhost only with a lower warning threshold
  tallyd --bind=127.0.0.1:8350 --warn-threshold=500.00

  # Verbose logging for debugging submissions
  tallyd --log-level=DEBUG`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure logging level immediately after flags are parsed to
		// prevent INFO logs during config initialization when ERROR level
		// is requested
		logging.SetLevel(config.Global.LogLevel)
		config.InitializeConfig()
		logging.SetLevel(config.Global.LogLevel)
		return config.ValidateConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return daemon.Run()
	},
}

// SetupFlags configures all flags for the daemon root command.
func SetupFlags() {
	RootCmd.Flags().StringVar(&config.Global.RawBind, "bind", config.DefaultBind,
		"Address and port to bind the HTTP endpoint to (e.g., 127.0.0.1:8350)")
	RootCmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	RootCmd.Flags().StringVar(&config.Global.WarnThreshold, "warn-threshold", config.DefaultWarnThreshold,
		"Amount above which review rounds answer with a suggest-skip warning")
}
