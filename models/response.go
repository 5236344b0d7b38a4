package models

// ScrapeResponse is the body returned by POST /scrape. Exactly one of
// Reviews/Count or Error is meaningful.
type ScrapeResponse struct {
	Success bool     `json:"success,omitempty"`
	Reviews []Review `json:"reviews"`
	Count   int      `json:"count"`

	// Error is populated when the backend could not scrape the page.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a bare {"error": "..."} body, as returned by a failed
// POST /export.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Blob is an opaque binary payload, such as the spreadsheet returned by
// a successful export.
type Blob struct {
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (b *Blob) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// HealthResponse is the response for GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Sessions int    `json:"sessions"`
	Backend  string `json:"backend"`
	Version  string `json:"version"`
}
