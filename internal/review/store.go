package review

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tally-dev/tally/internal/pipeline"
)

// NoSectionID marks a section that does not declare a pipeline section id.
// Records from such a section are submitted without one, which endpoints
// accept when they run a single pipeline section.
const NoSectionID = -1

// Sentinel errors for store operations. Wrapped with context at call sites.
var (
	ErrNoSuchSection        = errors.New("no such section")
	ErrDuplicateSection     = errors.New("section already exists")
	ErrNoSuchTransaction    = errors.New("no such transaction")
	ErrDuplicateTransaction = errors.New("transaction id already present")
	ErrSectionBusy          = errors.New("section has a submission in flight")
	ErrReservedField        = errors.New("field name is reserved")
)

// section groups rows that were loaded together and share a pipeline section
// id. Row order within a section is insertion order and is preserved through
// collection so submissions match the source batch.
type section struct {
	name          string
	pipelineID    int
	hasPipelineID bool
	rows          []*Row
}

// Store is the explicit client-side model of all candidate transactions:
// ordered sections of rows, indexed by transaction id. All mutation goes
// through the store under a single lock, and removal is idempotent, so a
// late response entry for an already-removed row degrades to a no-op.
//
// The store also carries the per-section in-flight guard: a section that is
// part of an unresolved submission refuses to join another one, which closes
// the historical race of two overlapping submissions stomping each other's
// feedback.
type Store struct {
	mu sync.Mutex

	schema     *Schema
	sections   []*section
	byName     map[string]*section
	byID       map[string]*Row
	rowSection map[string]*section
	inFlight   map[string]bool
}

// NewStore creates an empty store validating records against the given
// schema. A nil schema selects DefaultSchema.
func NewStore(schema *Schema) *Store {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Store{
		schema:     schema,
		byName:     make(map[string]*section),
		byID:       make(map[string]*Row),
		rowSection: make(map[string]*section),
		inFlight:   make(map[string]bool),
	}
}

// AddSection registers a named section. Pass NoSectionID when the section
// does not declare a pipeline section id.
func (s *Store) AddSection(name string, pipelineSectionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	sec := &section{
		name:          name,
		pipelineID:    pipelineSectionID,
		hasPipelineID: pipelineSectionID != NoSectionID,
	}
	s.sections = append(s.sections, sec)
	s.byName[name] = sec
	return nil
}

// AddRow validates and inserts a candidate transaction into a section. Field
// keys are normalized (hyphens become underscores) before schema validation;
// two source keys that normalize to the same name are rejected rather than
// silently merged. Envelope keys (transaction_id, pipeline_section_id,
// do_not_skip) are not record fields and are rejected as well.
//
// New rows start unmarked; callers decide which rows become submission
// candidates via MarkForCommit or MarkAllForCommit.
func (s *Store) AddRow(sectionName, transactionID string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.byName[sectionName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSection, sectionName)
	}
	if transactionID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if _, ok := s.byID[transactionID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTransaction, transactionID)
	}

	normalized := make(map[string]string, len(fields))
	for key, value := range fields {
		nk := NormalizeKey(key)
		switch nk {
		case pipeline.TransactionIDKey, pipeline.SectionIDKey, pipeline.DoNotSkipKey:
			return fmt.Errorf("%w: %s", ErrReservedField, key)
		}
		if _, dup := normalized[nk]; dup {
			return fmt.Errorf("transaction %s: fields %q collide after normalization", transactionID, nk)
		}
		normalized[nk] = value
	}
	if err := s.schema.Validate(normalized); err != nil {
		return fmt.Errorf("transaction %s: %w", transactionID, err)
	}

	row := &Row{ID: transactionID, Fields: normalized}
	sec.rows = append(sec.rows, row)
	s.byID[transactionID] = row
	s.rowSection[transactionID] = sec
	return nil
}

// MarkForCommit flags one row for submission. Fails for unknown ids and for
// rows with a discard verdict.
func (s *Store) MarkForCommit(transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[transactionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchTransaction, transactionID)
	}
	if err := row.MarkForCommit(); err != nil {
		return fmt.Errorf("transaction %s: %w", transactionID, err)
	}
	return nil
}

// MarkAllForCommit flags every markable row in a section and returns how many
// were marked. Discarded rows are left alone rather than treated as an error:
// a batch with some dead rows is still submittable.
func (s *Store) MarkAllForCommit(sectionName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.byName[sectionName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchSection, sectionName)
	}
	marked := 0
	for _, row := range sec.rows {
		if err := row.MarkForCommit(); err == nil {
			marked++
		}
	}
	return marked, nil
}

// OverrideSkips re-marks rows whose last verdict was suggest-skip, signalling
// that the user wants them committed despite the warning. Returns the number
// of overridden rows. Discarded rows are never touched.
func (s *Store) OverrideSkips(sectionName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.byName[sectionName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchSection, sectionName)
	}
	overridden := 0
	for _, row := range sec.rows {
		if row.Feedback.HasVerdict && row.Feedback.Verdict == VerdictSuggestSkip {
			if err := row.MarkForCommit(); err == nil {
				overridden++
			}
		}
	}
	return overridden, nil
}

// Remove deletes a row from the model. Removing an absent id is a no-op and
// returns false, so duplicate removal (e.g. from a late duplicate response)
// is harmless.
func (s *Store) Remove(transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(transactionID)
}

func (s *Store) removeLocked(transactionID string) bool {
	row, ok := s.byID[transactionID]
	if !ok {
		return false
	}
	sec := s.rowSection[transactionID]
	for i, r := range sec.rows {
		if r == row {
			sec.rows = append(sec.rows[:i], sec.rows[i+1:]...)
			break
		}
	}
	delete(s.byID, transactionID)
	delete(s.rowSection, transactionID)
	return true
}

// Row returns a snapshot of one row. The snapshot shares field and message
// slices with the store and must be treated as read-only.
func (s *Store) Row(transactionID string) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[transactionID]
	if !ok {
		return Row{}, false
	}
	return *row, true
}

// Rows returns snapshots of a section's rows in insertion order.
func (s *Store) Rows(sectionName string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.byName[sectionName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchSection, sectionName)
	}
	out := make([]Row, 0, len(sec.rows))
	for _, row := range sec.rows {
		out = append(out, *row)
	}
	return out, nil
}

// Sections returns section names in registration order.
func (s *Store) Sections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.sections))
	for _, sec := range s.sections {
		names = append(names, sec.name)
	}
	return names
}

// Len returns the number of rows still present across all sections.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// acquire claims the in-flight guard for the given sections, failing with
// ErrSectionBusy if any of them is already part of an unresolved submission.
// Claims are all-or-nothing so a failed acquire leaves no section locked.
func (s *Store) acquire(sectionNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range sectionNames {
		if _, ok := s.byName[name]; !ok {
			return fmt.Errorf("%w: %s", ErrNoSuchSection, name)
		}
		if s.inFlight[name] {
			return fmt.Errorf("%w: %s", ErrSectionBusy, name)
		}
	}
	for _, name := range sectionNames {
		s.inFlight[name] = true
	}
	return nil
}

// release drops the in-flight guard for the given sections.
func (s *Store) release(sectionNames []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range sectionNames {
		delete(s.inFlight, name)
	}
}

// setSubmissionState stamps a submission state on the given rows, skipping
// ids that were removed in the meantime.
func (s *Store) setSubmissionState(transactionIDs []string, state SubmissionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range transactionIDs {
		if row, ok := s.byID[id]; ok {
			row.Submission = state
		}
	}
}
