// Package main implements the Tally daemon (tallyd).
// Tallyd is a rule-based stub pipeline endpoint: it reviews transaction
// batches against a declared record schema and answers each transaction
// with a commit, suggest-skip, or discard verdict.
package main

import (
	"os"

	"github.com/tally-dev/tally/cmd/tallyd/commands"
)

func init() {
	commands.SetupFlags()
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
