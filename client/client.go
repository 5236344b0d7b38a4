package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/reviewui/metrics"
	"github.com/use-agent/reviewui/models"
)

// Client talks to the scraping backend's /scrape and /export endpoints.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests inject a mock
// transport this way).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every backend request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMetrics records backend latency and status into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Scrape posts req to /scrape and decodes the JSON reply.
//
// The body is decoded whatever the HTTP status: the backend reports
// application failures through the "error" field, which the caller
// inspects. Only transport and decode failures are returned as errors.
func (c *Client) Scrape(ctx context.Context, req *models.ScrapeRequest) (*models.ScrapeResponse, error) {
	resp, err := c.post(ctx, "/scrape", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.ScrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("scrape: decode response (status %d): %w", resp.StatusCode, err)
	}
	return &out, nil
}

// Export posts req to /export and returns the spreadsheet body.
//
// A non-2xx reply is decoded as {"error": "..."} and returned as a
// *models.BackendError; when the body carries no message the fallback
// "Export failed" is used. An undecodable error body is returned as a plain
// error.
func (c *Client) Export(ctx context.Context, req *models.ExportRequest) (*models.Blob, error) {
	resp, err := c.post(ctx, "/export", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errData models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errData); err != nil {
			return nil, fmt.Errorf("export: decode error response (status %d): %w", resp.StatusCode, err)
		}
		msg := errData.Error
		if msg == "" {
			msg = models.MsgExportFailed
		}
		return nil, &models.BackendError{StatusCode: resp.StatusCode, Message: msg}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("export: read body: %w", err)
	}
	return &models.Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// post sends payload as JSON to path and returns the raw response.
// The caller closes the body.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(path, "error", time.Since(start))
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	c.metrics.ObserveBackend(path, statusClass(resp.StatusCode), time.Since(start))
	return resp, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
