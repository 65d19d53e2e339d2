// Package display provides output formatting and display functions for tallyctl.
//
// This package handles all user-facing output formatting including table and
// JSON output for batch state, submission results, and endpoint health. It
// provides consistent formatting across all tallyctl commands with support
// for verbose mode and different output formats.
//
// The display functions handle:
// - Annotated batch state per transaction (verdict, commit mark, messages)
// - Commit round summaries with committed/removed/remaining counts
// - Endpoint health information
// - Consistent table formatting using text/tabwriter
// - JSON output with proper indentation and error handling
//
// All display functions respect global configuration for output format and
// verbosity while maintaining clean separation from business logic.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tally-dev/tally/cmd/tallyctl/config"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/pipeline"
	"github.com/tally-dev/tally/internal/review"
)

// rowView is the JSON projection of one batch row for machine-readable output.
type rowView struct {
	Section    string   `json:"section"`
	ID         string   `json:"transaction_id"`
	Verdict    string   `json:"verdict"`
	Commit     bool     `json:"commit"`
	Submission string   `json:"submission_state"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// DisplayBatch displays the current state of every row still in the batch,
// grouped by section in batch order. Rows removed by terminal verdicts no
// longer appear; the remaining rows show their latest feedback.
func DisplayBatch(store *review.Store) {
	var views []rowView
	for _, section := range store.Sections() {
		rows, err := store.Rows(section)
		if err != nil {
			continue
		}
		for _, row := range rows {
			verdict := "pending"
			if row.Feedback.HasVerdict {
				verdict = row.Feedback.Verdict.String()
			}
			views = append(views, rowView{
				Section:    section,
				ID:         row.ID,
				Verdict:    verdict,
				Commit:     row.Feedback.MarkedForCommit,
				Submission: row.Submission.String(),
				Errors:     row.Feedback.Errors,
				Warnings:   row.Feedback.Warnings,
			})
		}
	}

	if len(views) == 0 {
		if config.Global.Output == "json" {
			fmt.Println("[]")
		} else {
			fmt.Println("No transactions remaining in batch")
		}
		return
	}

	if config.Global.Output == "json" {
		// JSON output
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(views); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			fmt.Println("Error encoding JSON output")
		}
		return
	}

	// Table output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(w, "SECTION\tID\tVERDICT\tCOMMIT\tSUBMISSION\tERRORS\tWARNINGS")
	} else {
		fmt.Fprintln(w, "SECTION\tID\tVERDICT\tCOMMIT\tMESSAGES")
	}

	for _, v := range views {
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\t%s\n",
				v.Section, v.ID, v.Verdict, v.Commit, v.Submission,
				joinMessages(v.Errors), joinMessages(v.Warnings))
		} else {
			messages := append(append([]string{}, v.Errors...), v.Warnings...)
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n",
				v.Section, v.ID, v.Verdict, v.Commit, joinMessages(messages))
		}
	}
}

// commitSummary is the JSON projection of a commit round for machine output.
type commitSummary struct {
	SubmissionID string                   `json:"submission_id"`
	Submitted    int                      `json:"submitted"`
	Committed    int                      `json:"committed"`
	Rejected     int                      `json:"rejected"`
	Remaining    int                      `json:"remaining"`
	Entries      []pipeline.ResponseEntry `json:"entries,omitempty"`
}

// DisplayCommitResult displays the outcome of a commit round: how many
// transactions were committed, how many were rejected by terminal verdicts,
// and what still remains in the batch (rows that never entered the round).
func DisplayCommitResult(result *review.SubmitResult, store *review.Store) {
	summary := commitSummary{
		SubmissionID: result.SubmissionID,
		Submitted:    result.Submitted,
		Committed:    result.Committed,
		Rejected:     result.Removed - result.Committed,
		Remaining:    store.Len(),
	}
	if summary.Rejected < 0 {
		summary.Rejected = 0
	}
	if config.Global.Verbose {
		summary.Entries = result.Entries
	}

	if config.Global.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			fmt.Println("Error encoding JSON output")
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "SUBMITTED\tCOMMITTED\tREJECTED\tREMAINING")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\n",
		summary.Submitted, summary.Committed, summary.Rejected, summary.Remaining)

	if store.Len() > 0 {
		fmt.Fprintln(w)
		w.Flush()
		DisplayBatch(store)
	}
}

// DisplayHealth displays endpoint health information in tabular or JSON format.
func DisplayHealth(health *pipeline.HealthResponse) {
	if config.Global.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(health); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			fmt.Println("Error encoding JSON output")
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "STATUS\tVERSION\tUPTIME")
	fmt.Fprintf(w, "%s\t%s\t%s\n", health.Status, health.Version, health.Uptime)
}

// joinMessages flattens a message list into one table cell.
func joinMessages(messages []string) string {
	if len(messages) == 0 {
		return "-"
	}
	return strings.Join(messages, "; ")
}
