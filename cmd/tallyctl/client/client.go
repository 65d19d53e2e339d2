// Package client provides the HTTP client layer for the tallyctl CLI.
//
// This package implements all communication with the pipeline endpoint's REST
// API. It wraps the Resty HTTP client with Tally-specific functionality:
//
//   - Connection Management: Timeout configuration and retry policies
//   - Request/Response Handling: JSON serialization and structured error parsing
//   - Identification: User-Agent headers with CLI versioning
//   - Fault Tolerance: Automatic retries on connection failures only —
//     submissions are not idempotent once the endpoint has seen them, so
//     HTTP-level failures are never retried, matching the explicit
//     failed-submission handling in the review core
//
// The client satisfies the review core's transport interface, so the same
// submitter drives this production client and in-test fakes.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tally-dev/tally/cmd/tallyctl/config"
	"github.com/tally-dev/tally/cmd/tallyctl/utils"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/pipeline"
)

// PipelineAPIClient wraps the Resty HTTP client with pipeline endpoint
// functionality. Provides a configured client with retry logic, structured
// logging, and proper timeout handling for all submission operations.
type PipelineAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewPipelineAPIClient creates a new API client with comprehensive Resty
// configuration for reliable endpoint communication. Configures timeout
// handling, retry logic, structured logging integration, and proper headers.
func NewPipelineAPIClient(endpointAddr string, timeout int) *PipelineAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/api/v1", endpointAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestyLogger{})

	// Configure client with timeouts, headers, and retry logic
	client.
		SetTimeout(time.Duration(timeout) * time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("tallyctl/%s", config.Version))

	// Add retry mechanism with custom retry conditions
	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	// Custom request logging using structured logging
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	// Custom response logging using structured logging
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	// Custom error logging using structured logging
	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &PipelineAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// SubmitBatch posts one transaction batch to the pipeline endpoint and decodes
// the per-transaction verdict response. Satisfies the review core's Client
// interface so the submitter can drive this client directly.
//
// A 400 answer means the batch itself was rejected as illegal; the endpoint's
// reason is surfaced verbatim so the operator can fix the batch file.
func (api *PipelineAPIClient) SubmitBatch(ctx context.Context, req pipeline.SubmitRequest) (*pipeline.SubmitResponse, error) {
	var response pipeline.SubmitResponse

	resp, err := api.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&response).
		Post("/pipeline/submit")

	if err != nil {
		return nil, fmt.Errorf("failed to connect to endpoint at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() == 400 {
		return nil, fmt.Errorf("endpoint rejected batch: %s", resp.String())
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &response, nil
}

// Health fetches endpoint liveness information for connectivity checks.
func (api *PipelineAPIClient) Health() (*pipeline.HealthResponse, error) {
	var response pipeline.HealthResponse

	resp, err := api.client.R().
		SetResult(&response).
		Get("/health")

	if err != nil {
		return nil, fmt.Errorf("failed to connect to endpoint at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &response, nil
}

// CreateAPIClient creates a new pipeline API client using current global CLI
// configuration including endpoint address and timeout settings. Provides
// convenient client instantiation for CLI commands without manual
// configuration management.
func CreateAPIClient() *PipelineAPIClient {
	return NewPipelineAPIClient(config.Global.Endpoint, config.Global.Timeout)
}
