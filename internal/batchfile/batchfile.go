// Package batchfile loads candidate transaction batches from disk into the
// review model. A batch file is the JSON export of a resolved upload: named
// sections, each optionally tagged with a pipeline section id, holding rows
// of raw field values keyed by (possibly hyphenated) attribute names.
//
// FILE FORMAT:
//
//	{
//	  "sections": [
//	    {
//	      "name": "member payments",
//	      "pipeline_section_id": 0,
//	      "rows": [
//	        {"transaction_id": "sec-0-trans-0",
//	         "fields": {"amount": "50.00", "currency": "EUR"}}
//	      ]
//	    }
//	  ]
//	}
//
// Field keys are normalized on insertion, and every row is validated against
// the store's record schema, so a malformed batch fails at load time rather
// than at submission time.
package batchfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tally-dev/tally/internal/review"
)

// File is a parsed batch file.
type File struct {
	Sections []Section `json:"sections"`
}

// Section is one named group of rows sharing a pipeline section id.
type Section struct {
	Name string `json:"name"`

	// PipelineSectionID is optional; sections without one submit records
	// unsectioned, which single-section endpoints accept.
	PipelineSectionID *int `json:"pipeline_section_id,omitempty"`

	Rows []Row `json:"rows"`
}

// Row is one candidate transaction as exported.
type Row struct {
	TransactionID string            `json:"transaction_id"`
	Fields        map[string]string `json:"fields"`
}

// Load parses a batch file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	if len(f.Sections) == 0 {
		return nil, fmt.Errorf("batch file %s contains no sections", path)
	}
	return &f, nil
}

// Populate inserts the file's sections and rows into the store and marks
// every row for commit: loaded rows are submission candidates by definition,
// matching how a review screen starts with all resolved rows selected.
func (f *File) Populate(store *review.Store) error {
	for _, sec := range f.Sections {
		sectionID := review.NoSectionID
		if sec.PipelineSectionID != nil {
			sectionID = *sec.PipelineSectionID
		}
		if err := store.AddSection(sec.Name, sectionID); err != nil {
			return err
		}
		for _, row := range sec.Rows {
			if err := store.AddRow(sec.Name, row.TransactionID, row.Fields); err != nil {
				return err
			}
			if err := store.MarkForCommit(row.TransactionID); err != nil {
				return err
			}
		}
	}
	return nil
}
