package review

import (
	"fmt"
	"strings"

	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/pipeline"
)

// Outcome reports what applying a response entry did to the model.
type Outcome int

const (
	// OutcomeUpdated means the row's feedback was rewritten in place.
	OutcomeUpdated Outcome = iota

	// OutcomeRemoved means the row reached a terminal state and was deleted
	// from the model.
	OutcomeRemoved

	// OutcomeMissing means no row with the entry's transaction id exists,
	// typically because an earlier entry already removed it. A no-op.
	OutcomeMissing

	// OutcomeUnchanged means the entry could not be applied (unmapped
	// verdict code) and the row keeps its previous state.
	OutcomeUnchanged
)

// Apply renders one endpoint response entry onto the model. The transitions,
// evaluated in order:
//
//  1. Terminal removal: committed=true, or any nonzero verdict code under
//     commit intent, deletes the row. A warning or error verdict on a commit
//     request is a final rejection regardless of message detail.
//  2. Verdict update: the code is mapped to a verdict, the commit mark is set
//     only for a commit verdict, and the error/warning lists are replaced.
//
// Unmapped verdict codes (the reserved code 2 included) fail with
// ErrUnmappedVerdict and leave the row untouched. Entries whose row is gone
// are no-ops, so duplicate or late entries degrade gracefully.
func (s *Store) Apply(entry pipeline.ResponseEntry, commitIntent bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[entry.TransactionID]
	if !ok {
		logging.Debug("Response entry for absent transaction %s ignored", entry.TransactionID)
		return OutcomeMissing, nil
	}

	// Terminal removal inspects the raw code: any nonzero value under commit
	// intent is a rejection, mapped or not.
	if entry.Committed || (commitIntent && entry.Verdict > 0) {
		s.removeLocked(entry.TransactionID)
		return OutcomeRemoved, nil
	}

	verdict, err := ParseVerdict(entry.Verdict)
	if err != nil {
		return OutcomeUnchanged, fmt.Errorf("transaction %s: %w", entry.TransactionID, err)
	}

	row.Feedback.HasVerdict = true
	row.Feedback.Verdict = verdict
	row.Feedback.MarkedForCommit = verdict == VerdictCommit
	row.Feedback.Errors = append([]string(nil), entry.Errors...)
	row.Feedback.Warnings = append([]string(nil), entry.Warnings...)
	row.Submission = SubmissionIdle
	return OutcomeUpdated, nil
}

// Summary renders the feedback as operator-facing text: the verdict line
// followed by error and warning lists when present. This is the textual
// equivalent of the feedback block a review screen would show per row.
func (f Feedback) Summary() string {
	var b strings.Builder
	if !f.HasVerdict {
		b.WriteString("pending review")
	} else {
		b.WriteString("verdict: ")
		b.WriteString(f.Verdict.String())
	}
	if len(f.Errors) > 0 {
		b.WriteString("\nerrors:")
		for _, msg := range f.Errors {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
	}
	if len(f.Warnings) > 0 {
		b.WriteString("\nwarnings:")
		for _, msg := range f.Warnings {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
