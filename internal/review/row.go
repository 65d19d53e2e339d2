package review

import "errors"

// SubmissionState tracks where a row stands relative to the network round trip.
// It exists so transport failures leave a visible, retryable mark on affected
// rows instead of an indistinguishable "awaiting feedback" limbo.
type SubmissionState int

const (
	// SubmissionIdle means the row is not part of an outstanding submission.
	SubmissionIdle SubmissionState = iota

	// SubmissionInFlight means the row was collected into a submission that
	// has not resolved yet.
	SubmissionInFlight

	// SubmissionFailed means the last submission containing the row failed
	// at the transport or HTTP level. The row remains eligible for retry.
	SubmissionFailed
)

// String returns a short operator-facing label for the submission state.
func (s SubmissionState) String() string {
	switch s {
	case SubmissionInFlight:
		return "in-flight"
	case SubmissionFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Feedback is the per-row session state that the renderer maintains between
// pipeline round trips: the last verdict (if any), whether the row is marked
// for commit, and the endpoint's error and warning lists.
type Feedback struct {
	// HasVerdict distinguishes a fresh row from one the endpoint has judged.
	// A row with no verdict renders as "pending".
	HasVerdict bool
	Verdict    Verdict

	// MarkedForCommit makes the row eligible for collection. Only marked
	// rows are ever submitted.
	MarkedForCommit bool

	Errors   []string
	Warnings []string
}

// Row is one candidate transaction: a unique transaction id plus the record
// fields extracted from the source batch. Field keys are stored normalized
// (underscores, never hyphens); values stay as extracted strings and are
// typed-parsed server side.
type Row struct {
	ID     string
	Fields map[string]string

	Feedback   Feedback
	Submission SubmissionState
}

// ErrDiscarded reports an attempt to mark a row for commit after the endpoint
// answered discard. Discard is final: the row can never be committed.
var ErrDiscarded = errors.New("transaction has a discard verdict")

// MarkForCommit flags the row for inclusion in the next submission. Rows with
// a discard verdict refuse the mark.
func (r *Row) MarkForCommit() error {
	if r.Feedback.HasVerdict && r.Feedback.Verdict == VerdictDiscard {
		return ErrDiscarded
	}
	r.Feedback.MarkedForCommit = true
	return nil
}

// ClearCommitMark removes the row from submission eligibility without
// touching its verdict state.
func (r *Row) ClearCommitMark() {
	r.Feedback.MarkedForCommit = false
}

// overridesVerdict reports whether submitting this row would override a prior
// non-commit verdict, which the wire contract signals with do_not_skip.
func (r *Row) overridesVerdict() bool {
	return r.Feedback.HasVerdict && r.Feedback.Verdict != VerdictCommit
}
