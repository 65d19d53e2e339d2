package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/pipeline"
)

// newTestEngine returns an engine with the default schema and a 2500.00
// warning threshold.
func newTestEngine() *Engine {
	return NewEngine(nil, decimal.RequireFromString("2500.00"))
}

// transaction builds a submission record from an id and record fields.
func transaction(id string, fields map[string]any) pipeline.Transaction {
	tr := pipeline.Transaction{pipeline.TransactionIDKey: id}
	for k, v := range fields {
		tr[k] = v
	}
	return tr
}

func TestEngineVerdicts(t *testing.T) {
	tests := []struct {
		name         string
		tr           pipeline.Transaction
		commit       bool
		wantVerdict  int
		wantCommit   bool
		wantErrors   int
		wantWarnings int
	}{
		{
			name:        "clean_review",
			tr:          transaction("t1", map[string]any{"amount": "50", "currency": "EUR"}),
			wantVerdict: 0,
		},
		{
			name:        "clean_commit",
			tr:          transaction("t1", map[string]any{"amount": "50", "currency": "EUR"}),
			commit:      true,
			wantVerdict: 0,
			wantCommit:  true,
		},
		{
			name:        "bad_amount_discards",
			tr:          transaction("t1", map[string]any{"amount": "fifty", "currency": "EUR"}),
			wantVerdict: 3,
			wantErrors:  1,
		},
		{
			name:        "unknown_field_discards",
			tr:          transaction("t1", map[string]any{"amount": "50", "currency": "EUR", "color": "red"}),
			wantVerdict: 3,
			wantErrors:  1,
		},
		{
			name:        "missing_currency_discards",
			tr:          transaction("t1", map[string]any{"amount": "50"}),
			wantVerdict: 3,
			wantErrors:  1,
		},
		{
			name:         "over_threshold_suggests_skip",
			tr:           transaction("t1", map[string]any{"amount": "9000", "currency": "EUR"}),
			wantVerdict:  1,
			wantWarnings: 1,
		},
		{
			name: "do_not_skip_overrides_warning",
			tr: transaction("t1", map[string]any{
				"amount": "9000", "currency": "EUR", pipeline.DoNotSkipKey: true,
			}),
			commit:       true,
			wantVerdict:  0,
			wantCommit:   true,
			wantWarnings: 1,
		},
		{
			name:        "non_string_field_value_discards",
			tr:          transaction("t1", map[string]any{"amount": float64(50), "currency": "EUR"}),
			wantVerdict: 3,
			wantErrors:  2, // non-string value plus missing required amount
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			resp, err := engine.Process(pipeline.SubmitRequest{
				Commit:       tt.commit,
				Transactions: []pipeline.Transaction{tt.tr},
			})
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(resp.PipelineResponses) != 1 {
				t.Fatalf("got %d entries, want 1", len(resp.PipelineResponses))
			}
			entry := resp.PipelineResponses[0]
			if entry.Verdict != tt.wantVerdict {
				t.Errorf("verdict = %d, want %d (errors=%v warnings=%v)",
					entry.Verdict, tt.wantVerdict, entry.Errors, entry.Warnings)
			}
			if entry.Committed != tt.wantCommit {
				t.Errorf("committed = %v, want %v", entry.Committed, tt.wantCommit)
			}
			if len(entry.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", entry.Errors, tt.wantErrors)
			}
			if len(entry.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", entry.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestEngineRejectsUnattributableBatches(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Process(pipeline.SubmitRequest{
		Transactions: []pipeline.Transaction{
			{"amount": "50", "currency": "EUR"},
		},
	})
	if err == nil {
		t.Fatal("batch without transaction_id accepted")
	}
	if !strings.Contains(err.Error(), "missing transaction_id") {
		t.Errorf("error = %v", err)
	}

	_, err = engine.Process(pipeline.SubmitRequest{
		Transactions: []pipeline.Transaction{
			transaction("t1", map[string]any{
				"amount": "50", "currency": "EUR",
				pipeline.SectionIDKey: []any{"nope"},
			}),
		},
	})
	if err == nil {
		t.Fatal("malformed pipeline_section_id accepted")
	}
}

func TestEngineDuplicateWarningsInBatch(t *testing.T) {
	engine := newTestEngine()

	resp, err := engine.Process(pipeline.SubmitRequest{
		Transactions: []pipeline.Transaction{
			transaction("t1", map[string]any{"amount": "50", "currency": "EUR"}),
			transaction("t1", map[string]any{"amount": "50", "currency": "EUR"}),
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	// Every occurrence of a duplicated id gets the warning, first included.
	for i, entry := range resp.PipelineResponses {
		if entry.Verdict != 1 {
			t.Errorf("entry %d verdict = %d, want 1", i, entry.Verdict)
		}
		if len(entry.Warnings) != 1 {
			t.Errorf("entry %d warnings = %v", i, entry.Warnings)
		}
	}
}

func TestEngineRejectsResubmittedCommits(t *testing.T) {
	engine := newTestEngine()
	clean := transaction("t1", map[string]any{"amount": "50", "currency": "EUR"})

	resp, err := engine.Process(pipeline.SubmitRequest{
		Commit:       true,
		Transactions: []pipeline.Transaction{clean},
	})
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if !resp.PipelineResponses[0].Committed {
		t.Fatal("first commit did not commit")
	}

	resp, err = engine.Process(pipeline.SubmitRequest{
		Commit:       true,
		Transactions: []pipeline.Transaction{clean},
	})
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	entry := resp.PipelineResponses[0]
	if entry.Verdict != 3 {
		t.Errorf("resubmitted commit verdict = %d, want 3", entry.Verdict)
	}
	if entry.Committed {
		t.Error("resubmitted transaction reported committed")
	}
}

// TestHandleSubmit tests the HTTP layer around the engine
func TestHandleSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/submit", HandleSubmit(newTestEngine()))

	post := func(t *testing.T, body any) *httptest.ResponseRecorder {
		t.Helper()
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req := httptest.NewRequest("POST", "/submit", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Valid batch
	w := post(t, pipeline.SubmitRequest{
		Transactions: []pipeline.Transaction{
			transaction("t1", map[string]any{"amount": "50", "currency": "EUR"}),
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body=%s)", w.Code, http.StatusOK, w.Body.String())
	}
	var resp pipeline.SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.PipelineResponses) != 1 || resp.PipelineResponses[0].TransactionID != "t1" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Structurally illegal batch
	w = post(t, pipeline.SubmitRequest{
		Transactions: []pipeline.Transaction{{"amount": "50"}},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("illegal batch status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Malformed body
	req := httptest.NewRequest("POST", "/submit", strings.NewReader("{not json"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
