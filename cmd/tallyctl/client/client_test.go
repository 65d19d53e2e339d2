package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tally-dev/tally/internal/pipeline"
)

// newTestClient starts an httptest server with the given handler and returns
// a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *PipelineAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewPipelineAPIClient(strings.TrimPrefix(server.URL, "http://"), 2)
}

func TestSubmitBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/pipeline/submit" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}

		var req pipeline.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.Commit || len(req.Transactions) != 1 {
			t.Errorf("request = %+v", req)
		}

		json.NewEncoder(w).Encode(pipeline.SubmitResponse{
			PipelineResponses: []pipeline.ResponseEntry{
				{TransactionID: "t1", Verdict: 0, Committed: true},
			},
		})
	})

	resp, err := client.SubmitBatch(context.Background(), pipeline.SubmitRequest{
		Commit: true,
		Transactions: []pipeline.Transaction{
			{pipeline.TransactionIDKey: "t1", "amount": "50", "currency": "EUR"},
		},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if len(resp.PipelineResponses) != 1 || !resp.PipelineResponses[0].Committed {
		t.Errorf("response = %+v", resp)
	}
}

func TestSubmitBatchBadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "missing transaction_id"})
	})

	_, err := client.SubmitBatch(context.Background(), pipeline.SubmitRequest{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "endpoint rejected batch") {
		t.Errorf("error = %v", err)
	}
}

func TestSubmitBatchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SubmitBatch(context.Background(), pipeline.SubmitRequest{})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error = %v", err)
	}
}

func TestSubmitBatchConnectionFailure(t *testing.T) {
	// Point at a server that has already been shut down.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	client := NewPipelineAPIClient(addr, 1)
	_, err := client.SubmitBatch(context.Background(), pipeline.SubmitRequest{})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "failed to connect") {
		t.Errorf("error = %v", err)
	}
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(pipeline.HealthResponse{
			Status:  "healthy",
			Version: "0.1.0-dev",
			Uptime:  "30m0s",
		})
	})

	health, err := client.Health()
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" || health.Version != "0.1.0-dev" {
		t.Errorf("health = %+v", health)
	}
}
