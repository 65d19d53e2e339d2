package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/pipeline"
)

// Client is the transport the submitter drives. The production implementation
// lives in the CLI's client package; tests substitute fakes.
type Client interface {
	// SubmitBatch performs one POST of the request and decodes the response.
	// Transport and non-2xx failures are returned as errors.
	SubmitBatch(ctx context.Context, req pipeline.SubmitRequest) (*pipeline.SubmitResponse, error)
}

// SubmitResult summarizes one completed submission round trip.
type SubmitResult struct {
	// SubmissionID correlates log lines for this round trip.
	SubmissionID string

	// Commit records the intent the round trip was made with.
	Commit bool

	// Submitted is the number of records collected and sent.
	Submitted int

	// Committed counts response entries reporting committed=true.
	Committed int

	// Removed counts rows deleted by terminal verdicts, Updated counts rows
	// whose feedback was rewritten in place.
	Removed int
	Updated int

	// Entries is the endpoint's response in server processing order.
	Entries []pipeline.ResponseEntry
}

// Submitter aggregates collected records from one or more sections, performs
// exactly one request per Submit call, and renders every response entry back
// onto the store.
//
// Overlap protection is explicit: sections joining a submission are guarded
// until the round trip resolves, and a second Submit over a guarded section
// fails with ErrSectionBusy instead of racing.
type Submitter struct {
	store  *Store
	client Client
}

// NewSubmitter wires a submitter to its model and transport.
func NewSubmitter(store *Store, client Client) *Submitter {
	return &Submitter{store: store, client: client}
}

// Submit collects all commit-marked rows from the given sections (all
// sections when none are named), posts them as one batch with the given
// commit intent, and applies the response entry by entry.
//
// On transport or HTTP failure every submitted row is stamped
// SubmissionFailed and stays in the model, eligible for retry. Response
// entries that cannot be applied (unmapped verdict codes) are reported in the
// returned error but do not stop the remaining entries from being applied.
func (s *Submitter) Submit(ctx context.Context, sections []string, commit bool) (*SubmitResult, error) {
	if len(sections) == 0 {
		sections = s.store.Sections()
	}

	if err := s.store.acquire(sections); err != nil {
		return nil, err
	}
	defer s.store.release(sections)

	// Collect per section, preserving section order and row order within
	// each section.
	var records []pipeline.Transaction
	for _, name := range sections {
		collected, err := s.store.Collect(name)
		if err != nil {
			return nil, err
		}
		records = append(records, collected...)
	}

	result := &SubmitResult{
		SubmissionID: uuid.NewString(),
		Commit:       commit,
		Submitted:    len(records),
	}
	if len(records) == 0 {
		logging.Debug("Submission %s: no commit-marked rows, skipping request", result.SubmissionID)
		return result, nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		if id, ok := record[pipeline.TransactionIDKey].(string); ok {
			ids = append(ids, id)
		}
	}

	logging.Debug("Submission %s: posting %d transactions (commit=%v)",
		result.SubmissionID, len(records), commit)
	s.store.setSubmissionState(ids, SubmissionInFlight)

	resp, err := s.client.SubmitBatch(ctx, pipeline.SubmitRequest{
		Commit:       commit,
		Transactions: records,
	})
	if err != nil {
		s.store.setSubmissionState(ids, SubmissionFailed)
		return nil, fmt.Errorf("submission %s failed: %w", result.SubmissionID, err)
	}

	var applyErrs []error
	for _, entry := range resp.PipelineResponses {
		if entry.Committed {
			result.Committed++
		}
		outcome, err := s.store.Apply(entry, commit)
		if err != nil {
			applyErrs = append(applyErrs, err)
			continue
		}
		switch outcome {
		case OutcomeRemoved:
			result.Removed++
		case OutcomeUpdated:
			result.Updated++
		}
	}
	result.Entries = resp.PipelineResponses

	// Rows the endpoint did not answer for drop back to idle rather than
	// hanging in-flight forever.
	s.store.setSubmissionState(ids, SubmissionIdle)

	logging.Debug("Submission %s: %d removed, %d updated, %d committed",
		result.SubmissionID, result.Removed, result.Updated, result.Committed)
	return result, errors.Join(applyErrs...)
}
