package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Transport invokes a named upstream routing function and returns its raw
// JSON payload. Implementations own the timeout; the dispatcher never
// retries a failed invocation.
type Transport interface {
	Invoke(ctx context.Context, target string, query url.Values) (json.RawMessage, error)
}

// HTTPTransport invokes upstream functions over HTTP as GET
// {baseURL}/{target}?{query}.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport bound to the given base URL. The
// timeout bounds the whole invocation including reading the body.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Invoke performs the upstream call and returns the raw response body.
func (t *HTTPTransport) Invoke(ctx context.Context, target string, query url.Values) (json.RawMessage, error) {
	u := t.baseURL + "/" + target
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, target)
	}
	return body, nil
}
