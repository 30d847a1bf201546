package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned by New when the base URL cannot be parsed.
	ErrInvalidBaseURL = errors.New("invalid API base URL")

	// ErrDecodeResponse is returned when a success response body is not the expected JSON.
	ErrDecodeResponse = errors.New("failed to decode API response")
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	// Message is the backend's "error" field, when present.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// StatusCode returns the HTTP status of the failed response.
func (e *StatusError) StatusCode() int {
	return e.Code
}
