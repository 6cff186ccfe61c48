// Package proxy executes SQL statements against the remote school database
// through an HTTP relay endpoint.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/schooldesk/mcp-school/creds"
)

// Executor runs one parameterized statement and returns its normalized result.
// Statements use ? placeholders; implementations translate them if the engine
// needs a different style.
type Executor interface {
	Execute(ctx context.Context, statement string, params []any) (*Result, error)
}

// Result is the uniform shape of a statement execution. Rows is non-nil for
// read results; writes report affected rows and the generated identifier.
type Result struct {
	Rows         []map[string]any `json:"rows,omitempty"`
	RowsAffected int64            `json:"rows_affected"`
	LastInsertID int64            `json:"insert_id"`
}

// IsRead reports whether the result came from a read statement.
func (r *Result) IsRead() bool {
	return r.Rows != nil
}

// RemoteExecutionError wraps any failure to complete a statement at the relay:
// transport errors, non-2xx responses, malformed bodies, and application-level
// error statuses embedded in otherwise successful responses.
type RemoteExecutionError struct {
	Message string
	Err     error
}

func (e *RemoteExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote execution failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("remote execution failed: %s", e.Message)
}

func (e *RemoteExecutionError) Unwrap() error {
	return e.Err
}

// Client executes statements by POSTing them to the relay's /query endpoint.
type Client struct {
	baseURL    string
	defaultKey string
	httpClient *http.Client
}

// NewClient creates a relay client. defaultKey is the process-wide credential
// used for requests whose context carries no per-request key.
func NewClient(baseURL, defaultKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		defaultKey: defaultKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type queryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// writeResponse mirrors the relay's object-shaped reply for write statements.
// A status of "error" inside an HTTP 200 signals an application-level failure.
type writeResponse struct {
	Status       string `json:"status,omitempty"`
	Message      string `json:"message,omitempty"`
	RowsAffected int64  `json:"rows_affected"`
	InsertID     int64  `json:"insert_id"`
}

// Execute sends the statement to the relay. An array-shaped response body is
// a read result; an object-shaped body is a write result.
func (c *Client) Execute(ctx context.Context, statement string, params []any) (*Result, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(queryRequest{SQL: statement, Params: params})
	if err != nil {
		return nil, &RemoteExecutionError{Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteExecutionError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteExecutionError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteExecutionError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteExecutionError{
			Message: fmt.Sprintf("relay returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		rows := []map[string]any{}
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, &RemoteExecutionError{Message: "malformed read response", Err: err}
		}
		return &Result{Rows: rows}, nil
	}

	var wr writeResponse
	if err := json.Unmarshal(trimmed, &wr); err != nil {
		return nil, &RemoteExecutionError{Message: "malformed response body", Err: err}
	}
	if wr.Status == "error" {
		msg := wr.Message
		if msg == "" {
			msg = "relay reported an error without a message"
		}
		return nil, &RemoteExecutionError{Message: msg}
	}

	return &Result{RowsAffected: wr.RowsAffected, LastInsertID: wr.InsertID}, nil
}

// apiKey resolves the credential for one call: the request-scoped key from
// the context when present, otherwise the configured process-wide default.
// The fallback is deliberate so unauthenticated local tooling can still use
// the server's own key.
func (c *Client) apiKey(ctx context.Context) string {
	if key := creds.FromContext(ctx); key != "" {
		return key
	}
	return c.defaultKey
}
