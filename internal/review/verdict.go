// Package review implements the client side of the transaction submission
// pipeline: an explicit in-memory model of candidate transaction rows, a
// collector that turns commit-marked rows into wire records, a submitter that
// drives the round trip to the pipeline endpoint, and a renderer that applies
// the endpoint's verdicts back onto the model.
//
// The model replaces implicit shared state with a Store that owns every row,
// so verdict transitions can be exercised in tests without any live transport.
// The only asynchronous boundary is the Submitter's HTTP call; everything else
// is synchronous state manipulation under the Store's lock.
package review

import (
	"errors"
	"fmt"
)

// Verdict is the endpoint's judgment on a single transaction.
//
// The numeric values mirror the wire contract: the endpoint encodes verdicts
// as a bitmask where discard implies suggest-skip, which is why discard is 3
// and the bare value 2 never occurs. ParseVerdict refuses to guess at codes
// outside the mapped set.
type Verdict int

const (
	// VerdictCommit means the transaction is clean and eligible for commit.
	VerdictCommit Verdict = 0

	// VerdictSuggestSkip is a non-fatal warning: the endpoint recommends
	// skipping the transaction, but the user may override with do_not_skip.
	VerdictSuggestSkip Verdict = 1

	// VerdictDiscard is fatal: the transaction can never be committed.
	VerdictDiscard Verdict = 3
)

// ErrUnmappedVerdict reports a verdict code outside the mapped set (notably
// the reserved code 2). Rows keep their previous state when this happens.
var ErrUnmappedVerdict = errors.New("unmapped verdict code")

// ParseVerdict maps a wire verdict code to a Verdict. Unmapped codes return
// ErrUnmappedVerdict so callers surface them instead of assuming a meaning.
func ParseVerdict(code int) (Verdict, error) {
	switch code {
	case 0:
		return VerdictCommit, nil
	case 1:
		return VerdictSuggestSkip, nil
	case 3:
		return VerdictDiscard, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnmappedVerdict, code)
	}
}

// String returns the canonical label for a verdict, matching the session
// state names used in feedback output.
func (v Verdict) String() string {
	switch v {
	case VerdictCommit:
		return "commit"
	case VerdictSuggestSkip:
		return "suggest-skip"
	case VerdictDiscard:
		return "discard"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}
