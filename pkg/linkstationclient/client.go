// Package linkstationclient is a small Go client for the linkstation HTTP API.
package linkstationclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBasePath is the API base path of a default server.
const DefaultBasePath = "/api/v1"

// Outcome is the response of a find request.
type Outcome struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Found reports whether a station reaches the device.
func (o Outcome) Found() bool { return o.Status == "success" }

// Health is the body of GET /health.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkstation: %d %s", e.StatusCode, e.Message)
}

// Client calls a linkstation server.
type Client struct {
	baseURL  string
	basePath string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBasePath sets the API base path.
func WithBasePath(p string) Option {
	return func(c *Client) { c.basePath = "/" + strings.Trim(p, "/") }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		basePath: DefaultBasePath,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindLinkStation posts payload to the find endpoint. payload is sent as
// JSON; []byte and json.RawMessage are sent unchanged.
func (c *Client) FindLinkStation(ctx context.Context, payload any) (Outcome, error) {
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	case json.RawMessage:
		body = p
	default:
		b, err := json.Marshal(payload)
		if err != nil {
			return Outcome{}, fmt.Errorf("encode payload: %w", err)
		}
		body = b
	}
	var out Outcome
	err := c.do(ctx, http.MethodPost, c.basePath+"/linkstation/findLinkStationForDevice", body, &out)
	return out, err
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Status = "error"
			apiErr.Message = strings.TrimSpace(string(data))
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
