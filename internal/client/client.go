// Package client issues the per-row PUT requests to the target API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "resourceload/1.0"

// Result is the outcome of a completed HTTP exchange. A non-2xx status is a
// Result, not an error; errors are reserved for transport-level failures
// (connection refused, timeout, DNS).
type Result struct {
	StatusCode int
	Body       string
}

// OK reports whether the exchange ended with a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Dispatcher performs single PUT requests with fixed headers and a
// per-request timeout. The zero value is not usable; construct with New.
type Dispatcher struct {
	httpClient *http.Client
	authToken  string
}

// New returns a Dispatcher with the given request timeout. authToken may be
// empty, in which case no Authorization header is sent.
func New(timeout time.Duration, authToken string) *Dispatcher {
	return &Dispatcher{
		httpClient: &http.Client{Timeout: timeout},
		authToken:  authToken,
	}
}

// Put sends body as JSON to url and returns the raw outcome. The response
// body is read in full so the connection can be reused.
func (d *Dispatcher) Put(ctx context.Context, url string, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if d.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.authToken)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}

// JoinID appends id as a path segment to base, trimming one trailing slash
// from base first.
func JoinID(base, id string) string {
	return strings.TrimSuffix(base, "/") + "/" + id
}
