// Package handlers provides command handler functions for tallyctl.
//
// This package contains all the command execution logic for tallyctl commands,
// organized by concern for maintainability and clean separation:
//
// - batch.go: batch round trips (review, commit) over a loaded batch file
// - health.go: endpoint connectivity checking
//
// All handlers follow consistent patterns:
// - cobra.Command RunE function signature for CLI integration
// - Standardized error handling and logging using the logging package
// - Consistent output formatting through the display package
// - Clean separation between API communication and presentation logic
//
// The handlers coordinate between the batch loader, the review core, the API
// client, and display functions while keeping the commands thin.
package handlers
