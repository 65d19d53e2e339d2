// Package handlers provides HTTP request handlers for the tallyd stub endpoint.
//
// This file implements the pipeline submission endpoint that drives the whole
// development loop: clients POST a batch of transactions with a commit-intent
// flag and receive one verdict entry per transaction.
//
// SUBMISSION ENDPOINT:
//   - POST /api/v1/pipeline/submit: review or commit a transaction batch
//
// VERDICT RULES:
// The stub judges transactions with deterministic local rules so client
// behavior can be exercised without a real ledger behind the endpoint:
//
//   - Schema violations (bad amount, unknown field, missing currency) are
//     fatal: verdict 3 (discard) with one error per violation.
//   - Duplicate transaction ids within a batch, ids committed in an earlier
//     request, and amounts above the configured threshold produce warnings:
//     verdict 1 (suggest-skip), unless the transaction carries do_not_skip.
//   - Clean transactions get verdict 0 (commit) and, on commit requests,
//     are recorded as committed and answered with committed=true.
//
// Structurally illegal batches (missing transaction ids, malformed section
// ids) reject the whole request with HTTP 400, matching how a real pipeline
// endpoint refuses input it cannot even attribute to a transaction.
package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/pipeline"
	"github.com/tally-dev/tally/internal/review"
)

// Engine holds the stub endpoint's verdict rules and the committed-id set
// that persists across requests within one daemon run. Safe for concurrent
// request handling.
type Engine struct {
	mu            sync.Mutex
	schema        *review.Schema
	warnThreshold decimal.Decimal
	committed     map[string]bool
}

// NewEngine creates a verdict engine validating against the given schema and
// warning on amounts above the threshold. A nil schema selects the default
// payment record schema.
func NewEngine(schema *review.Schema, warnThreshold decimal.Decimal) *Engine {
	if schema == nil {
		schema = review.DefaultSchema()
	}
	return &Engine{
		schema:        schema,
		warnThreshold: warnThreshold,
		committed:     make(map[string]bool),
	}
}

// badRequestError rejects a whole batch as structurally illegal.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

// Process judges every transaction in the request and, for commit requests,
// records clean transactions as committed. Returns badRequestError when the
// batch itself is illegal (a transaction that cannot be identified).
func (e *Engine) Process(req pipeline.SubmitRequest) (*pipeline.SubmitResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Count ids up front so every duplicate occurrence gets the warning,
	// not just the second and later ones.
	seen := make(map[string]int, len(req.Transactions))
	for _, tr := range req.Transactions {
		id, ok := tr[pipeline.TransactionIDKey].(string)
		if !ok || id == "" {
			return nil, badRequestError{"illegally formatted transaction: missing transaction_id"}
		}
		seen[id]++
	}

	entries := make([]pipeline.ResponseEntry, 0, len(req.Transactions))
	for _, tr := range req.Transactions {
		entry, err := e.judge(tr, seen)
		if err != nil {
			return nil, err
		}
		if req.Commit && entry.Verdict == 0 && len(entry.Errors) == 0 {
			e.committed[entry.TransactionID] = true
			entry.Committed = true
		}
		entries = append(entries, entry)
	}
	return &pipeline.SubmitResponse{PipelineResponses: entries}, nil
}

// judge produces the verdict entry for one transaction. The caller holds the
// engine lock.
func (e *Engine) judge(tr pipeline.Transaction, seen map[string]int) (pipeline.ResponseEntry, error) {
	id := tr[pipeline.TransactionIDKey].(string) // validated by Process

	entry := pipeline.ResponseEntry{
		TransactionID: id,
		Errors:        []string{},
		Warnings:      []string{},
	}

	doNotSkip, _ := tr[pipeline.DoNotSkipKey].(bool)

	// Section ids arrive as JSON numbers or strings; both are fine, but a
	// value that is neither makes the transaction unattributable.
	if raw, ok := tr[pipeline.SectionIDKey]; ok {
		switch raw.(type) {
		case float64, string:
		default:
			return entry, badRequestError{fmt.Sprintf(
				"illegally formatted transaction %s: bad pipeline_section_id", id)}
		}
	}

	// Record fields: everything outside the envelope, string-valued.
	fields := make(map[string]string, len(tr))
	for key, value := range tr {
		switch key {
		case pipeline.TransactionIDKey, pipeline.SectionIDKey, pipeline.DoNotSkipKey:
			continue
		}
		str, ok := value.(string)
		if !ok {
			entry.Errors = append(entry.Errors, fmt.Sprintf("field %s: expected string value", key))
			continue
		}
		fields[key] = str
	}

	if err := e.schema.Validate(fields); err != nil {
		entry.Errors = append(entry.Errors, splitJoined(err)...)
	}

	if e.committed[id] {
		entry.Errors = append(entry.Errors, "transaction was already committed")
	}

	if seen[id] > 1 {
		entry.Warnings = append(entry.Warnings, "duplicate transaction id in batch")
	}
	if amount, ok := fields["amount"]; ok && len(entry.Errors) == 0 {
		if dec, err := decimal.NewFromString(amount); err == nil && dec.GreaterThan(e.warnThreshold) {
			entry.Warnings = append(entry.Warnings,
				fmt.Sprintf("amount %s exceeds review threshold %s", dec, e.warnThreshold))
		}
	}

	switch {
	case len(entry.Errors) > 0:
		entry.Verdict = int(review.VerdictDiscard)
	case len(entry.Warnings) > 0 && !doNotSkip:
		entry.Verdict = int(review.VerdictSuggestSkip)
	default:
		entry.Verdict = int(review.VerdictCommit)
	}
	return entry, nil
}

// HandleSubmit returns the gin handler for pipeline submissions backed by the
// given engine.
func HandleSubmit(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pipeline.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		resp, err := engine.Process(req)
		if err != nil {
			logging.Warn("Rejected submission batch: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logging.Debug("Processed %d transactions (commit=%v)", len(req.Transactions), req.Commit)
		c.JSON(http.StatusOK, resp)
	}
}

// splitJoined flattens an errors.Join tree into per-violation messages so the
// response carries one string per problem instead of a newline blob.
func splitJoined(err error) []string {
	type unwrapper interface{ Unwrap() []error }
	if joined, ok := err.(unwrapper); ok {
		var msgs []string
		for _, sub := range joined.Unwrap() {
			msgs = append(msgs, sub.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
