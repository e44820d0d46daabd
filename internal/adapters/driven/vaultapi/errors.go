package vaultapi

import "fmt"

// APIError is a backend-reported failure: a non-2xx status or a JSON
// envelope with success=false. The server message, when present, is what
// the user sees.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server-provided error message, if any.
	Message string

	// URL is the request URL.
	URL string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("vault API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("vault API error (%d) at %s", e.StatusCode, e.URL)
}

// UserMessage returns the message suitable for showing the user. Empty
// when the server gave none; callers fall back to their own wording.
func (e *APIError) UserMessage() string {
	return e.Message
}
