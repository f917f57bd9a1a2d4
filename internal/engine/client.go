package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the engine address used when no configuration is present
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// StatusPath is the read-only status snapshot endpoint
	StatusPath = "/api/v1/outbound/status"

	// StartPath is the batch submission endpoint
	StartPath = "/api/v1/outbound/start"
)

// Client is an HTTP client for the outbound campaign engine.
//
// The client performs no retries of its own: status fetches are driven by the
// console's fixed poll period, and start requests are not idempotent so a
// failed submission is always reported back to the operator instead of being
// re-sent.
type Client struct {
	// BaseURL is the engine's base URL (e.g. "http://localhost:8000")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the engine at baseURL.
// A trailing slash on baseURL is tolerated.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Ping performs a lightweight reachability check against the status endpoint.
// Returns nil if the engine is reachable and responding.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}

// GetStatus retrieves a snapshot of current engine state.
// Safe to call on a timer; the endpoint is read-only and idempotent.
func (c *Client) GetStatus() (*Status, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+StatusPath, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create status request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("status request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read status response", err)
	}

	var status Status
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, NewParseError("failed to parse status response", err)
	}

	if status.QueueSize < 0 {
		return nil, NewParseError(fmt.Sprintf("invalid queue size: %d", status.QueueSize), nil)
	}

	return &status, nil
}

// StartCalls submits a batch of phone numbers to be dialed.
//
// The batch must already be normalized (see ParseNumbers) and non-empty;
// an empty batch is rejected locally before any request is issued. The
// engine's response message is returned verbatim for display.
func (c *Client) StartCalls(numbers []string) (*StartResult, error) {
	if len(numbers) == 0 {
		return nil, NewValidationError("no phone numbers to submit")
	}

	payload, err := json.Marshal(StartRequest{PhoneNumbers: numbers})
	if err != nil {
		return nil, NewParseError("failed to encode start request", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+StartPath, bytes.NewReader(payload))
	if err != nil {
		return nil, NewNetworkError("failed to create start request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("start request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read start response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("start failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var result StartResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, NewParseError("failed to parse start response", err)
	}

	return &result, nil
}
