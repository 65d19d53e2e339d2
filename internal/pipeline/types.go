// Package pipeline defines the wire contract between transaction submission
// clients and a payment pipeline endpoint.
//
// The contract is a single JSON round trip: clients POST a batch of candidate
// transactions together with a commit-intent flag, and the endpoint answers
// with one response entry per transaction carrying errors, warnings, and an
// integer verdict code. The same types are used by the tallyctl client, the
// review core, and the tallyd stub endpoint so the two sides cannot drift.
//
// VERDICT CODES:
//   - 0: commit — the transaction is clean and may be committed
//   - 1: suggest-skip — non-fatal warning; commit requires an explicit override
//   - 3: discard — fatal; the transaction can never be committed
//
// Code 2 never appears on the wire. The verdict originates from a bitmask
// where discard implies suggest-skip (2|1 = 3), so the bare bit 2 is not a
// meaningful state and receivers must treat it as unmapped.
package pipeline

import "time"

// Well-known envelope keys on a submitted transaction. Every other key in a
// Transaction is a record field subject to schema validation. Keys always use
// underscores on the wire; clients normalize hyphenated source keys before
// submission.
const (
	// TransactionIDKey identifies the transaction so the response entry can
	// be matched back to it. Required on every submitted transaction.
	TransactionIDKey = "transaction_id"

	// SectionIDKey carries the pipeline section a transaction belongs to.
	// Optional when the endpoint is configured with a single section.
	SectionIDKey = "pipeline_section_id"

	// DoNotSkipKey marks a transaction that should be committed even though
	// an earlier review round answered suggest-skip. Absent means false.
	DoNotSkipKey = "do_not_skip"
)

// Transaction is one submitted transaction record: the envelope keys above
// plus the record's data fields. Field values are strings as extracted from
// the source rows; the endpoint performs typed parsing per its schema.
type Transaction map[string]any

// SubmitRequest is the POST body for the pipeline endpoint. Commit false asks
// for a review pass (annotate only); commit true asks the endpoint to commit
// every transaction its rules allow.
type SubmitRequest struct {
	Commit       bool          `json:"commit"`
	Transactions []Transaction `json:"transactions"`
}

// ResponseEntry is the endpoint's answer for a single transaction. Entries
// are matched to transactions by TransactionID, not by position, so servers
// are free to process out of request order.
type ResponseEntry struct {
	TransactionID string   `json:"transaction_id"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Verdict       int      `json:"verdict"`

	// Committed is only populated on commit requests and reports whether
	// the endpoint actually committed the transaction.
	Committed bool `json:"committed,omitempty"`
}

// SubmitResponse is the endpoint's full answer: one entry per submitted
// transaction in server processing order.
type SubmitResponse struct {
	PipelineResponses []ResponseEntry `json:"pipeline_responses"`
}

// HealthResponse reports endpoint liveness for client connectivity checks.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}
