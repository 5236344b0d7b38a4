package models

import "fmt"

// Error codes carried by UIError.
const (
	ErrCodeInvalidURL     = "INVALID_URL"
	ErrCodeServer         = "SERVER_ERROR"
	ErrCodeTransport      = "TRANSPORT_ERROR"
	ErrCodeSubmitInFlight = "SUBMIT_IN_FLIGHT"
	ErrCodeSuperseded     = "SUPERSEDED"
)

// Banner texts shown to the user.
const (
	MsgInvalidURL       = "Please enter a valid URL"
	MsgScrapeFailPrefix = "An error occurred while scraping: "
	MsgExportFailPrefix = "Export error: "
	MsgExportFailed     = "Export failed"
)

// UIError is the outcome of a failed user action. Message is exactly the
// text placed in the error banner (empty for silently dropped actions).
type UIError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *UIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// NewUIError creates a new UIError.
func NewUIError(code, message string, err error) *UIError {
	return &UIError{Code: code, Message: message, Err: err}
}

// BackendError is an application error reported by the scraping backend,
// either as the "error" field of a scrape response or as the JSON body of a
// failed export.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}
