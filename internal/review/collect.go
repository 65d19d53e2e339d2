package review

import (
	"fmt"
	"strings"

	"github.com/tally-dev/tally/internal/pipeline"
)

// NormalizeKey maps a source field key to its wire form by replacing every
// hyphen with an underscore. Source batches historically carry hyphenated
// attribute names ("member-email"); the endpoint only speaks underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// Collect extracts submission records from one section, in row insertion
// order. Only rows currently marked for commit contribute a record; everything
// else is filtered out entirely. Each record carries the transaction id, the
// section's pipeline section id when it declares one, all record fields, and
// do_not_skip=true when submitting the row overrides a prior non-commit
// verdict.
//
// Collect is read-only over the model: it never mutates rows or feedback.
// The section must exist; collecting from an unknown section is an error,
// not an empty result.
func (s *Store) Collect(sectionName string) ([]pipeline.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.byName[sectionName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchSection, sectionName)
	}

	var records []pipeline.Transaction
	for _, row := range sec.rows {
		if !row.Feedback.MarkedForCommit {
			continue
		}
		record := make(pipeline.Transaction, len(row.Fields)+3)
		record[pipeline.TransactionIDKey] = row.ID
		if sec.hasPipelineID {
			record[pipeline.SectionIDKey] = sec.pipelineID
		}
		for key, value := range row.Fields {
			record[key] = value
		}
		if row.overridesVerdict() {
			record[pipeline.DoNotSkipKey] = true
		}
		records = append(records, record)
	}
	return records, nil
}
