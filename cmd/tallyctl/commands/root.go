// Package commands provides the complete command tree implementation for tallyctl.
//
// This package defines the command structure for the Tally submission CLI.
// Commands map onto the two halves of the pipeline contract: a review round
// that annotates a batch with verdicts, and a commit round that finalizes it.
//
// COMMAND STRUCTURE:
//   - review: submit a batch for annotation only (commit=false)
//   - commit: review a batch, then commit the surviving rows (commit=true)
//   - health: check pipeline endpoint reachability
//
// All commands follow consistent patterns with standardized flag handling,
// error messages, and output formatting.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "tallyctl",
	Short: "CLI tool for reviewing and committing transaction batches against a payment pipeline",
	Long: `Tally CLI (tallyctl) is a command-line tool for driving transaction
batches through a payment pipeline endpoint.

A batch file holds resolved candidate transactions grouped into sections.
The review command submits them for annotation: the endpoint answers with a
verdict per transaction (commit, suggest-skip, or discard) plus error and
warning details. The commit command finalizes a batch: rows the endpoint
cleared are committed and leave the batch; rejected rows are dropped.`,
	SilenceUsage: true,
	Example: `  # Review a batch and inspect verdicts
  tallyctl review payments.json

  # Commit a reviewed batch
  tallyctl commit payments.json

  # Commit, overriding suggest-skip warnings
  tallyctl commit payments.json --force-skip

  # Restrict the round trip to one section
  tallyctl review payments.json --section "member payments"

  # Submit against a remote endpoint
  tallyctl --endpoint=192.168.1.100:8350 review payments.json

  # Output in JSON format
  tallyctl -o json review payments.json

  # Check endpoint connectivity
  tallyctl health`,
}

// Command definitions
var (
	reviewCmd = &cobra.Command{
		Use:   "review FILE",
		Short: "Submit a batch for review and display per-transaction verdicts",
		Args:  cobra.ExactArgs(1),
	}

	commitCmd = &cobra.Command{
		Use:   "commit FILE",
		Short: "Review a batch, then commit every transaction the endpoint cleared",
		Args:  cobra.ExactArgs(1),
	}

	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check pipeline endpoint reachability",
		Args:  cobra.NoArgs,
	}
)

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(reviewCmd)
	RootCmd.AddCommand(commitCmd)
	RootCmd.AddCommand(healthCmd)
}

// GetBatchCommands returns the batch round-trip commands for flag setup and
// handler assignment.
func GetBatchCommands() (*cobra.Command, *cobra.Command) {
	return reviewCmd, commitCmd
}

// GetHealthCommand returns the health command for handler assignment.
func GetHealthCommand() *cobra.Command {
	return healthCmd
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, endpointPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultEndpoint string) {
	rootCmd.PersistentFlags().StringVar(endpointPtr, "endpoint", defaultEndpoint,
		"Pipeline endpoint address (host:port)")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}

// SetupBatchFlags configures flags for the review and commit commands
func SetupBatchFlags(reviewCmd, commitCmd *cobra.Command,
	reviewSections *[]string, commitSections *[]string, forceSkip *bool, noReview *bool) {
	reviewCmd.Flags().StringSliceVar(reviewSections, "section", nil,
		"Section to submit (repeatable; default: all sections)")

	commitCmd.Flags().StringSliceVar(commitSections, "section", nil,
		"Section to submit (repeatable; default: all sections)")
	commitCmd.Flags().BoolVar(forceSkip, "force-skip", false,
		"Commit transactions the review round flagged suggest-skip (sets do_not_skip)")
	commitCmd.Flags().BoolVar(noReview, "no-review", false,
		"Skip the review round and commit immediately")
}
