// Package validator talks to the external compliance service. The service
// holds all of the permitting intelligence; this package only shapes the
// outbound request deterministically and parses whatever structured report
// comes back.
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"poolpermit/internal/permit"
)

// The three ways a submission can fail. Every one of them is recoverable:
// the wizard returns to the review step and the user may resubmit.
var (
	// ErrRequest marks a transport-level failure: the call never completed.
	ErrRequest = errors.New("validation request failed")
	// ErrService marks a completed call whose reply reported failure.
	ErrService = errors.New("validation service reported failure")
	// ErrMalformedResponse marks a reply that cannot be interpreted as a
	// validation result.
	ErrMalformedResponse = errors.New("validation response is malformed")
)

// Client submits an assembled application for compliance checking.
type Client interface {
	Submit(ctx context.Context, property permit.PropertyInfo, pool permit.PoolInfo, categories []string) (*Result, error)
}

// submitRequest is the wire shape of the outbound call: the narrative plus
// the fixed agent identifier the service routes on.
type submitRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

// submitResponse is the service's reply envelope. Response may be either the
// result payload itself or an object wrapping it under "result".
type submitResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// HTTPClient is the production Client. It posts the narrative to the
// configured endpoint and retries transient failures with exponential
// backoff before giving up.
type HTTPClient struct {
	endpoint   string
	agentID    string
	client     *http.Client
	maxRetries int
}

// ClientOption customizes an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient overrides the underlying http.Client (primarily for tests).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithMaxRetries overrides how many times a transient failure is retried.
func WithMaxRetries(retries int) ClientOption {
	return func(c *HTTPClient) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// NewHTTPClient builds a client for the given endpoint and agent identifier.
// Timeouts come from the caller's context, not the client.
func NewHTTPClient(endpoint, agentID string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:   endpoint,
		agentID:    agentID,
		client:     &http.Client{},
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the application narrative and parses the compliance report.
func (c *HTTPClient) Submit(ctx context.Context, property permit.PropertyInfo, pool permit.PoolInfo, categories []string) (*Result, error) {
	body, err := json.Marshal(submitRequest{
		Message: BuildNarrative(property, pool, categories),
		AgentID: c.agentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrRequest, err)
	}

	reply, err := c.post(ctx, body)
	if err != nil {
		return nil, err
	}

	var envelope submitResponse
	if err := json.Unmarshal(reply, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !envelope.Success {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrService, envelope.Error)
		}
		return nil, ErrService
	}

	return parseResult(envelope.Response)
}

// post performs the HTTP round trip, retrying transport errors and 5xx
// replies. A 4xx reply is a service failure and is not retried.
func (c *HTTPClient) post(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrRequest, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequest, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrRequest, ctx.Err())
			}
			lastErr = err
			continue
		}

		reply, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("%w: read response: %v", ErrRequest, readErr)
			}
			return reply, nil
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrRequest, lastErr)
}
