// Package vista provides an HTTP client for the Vista Social publishing API
// with browser-session authentication and error classification.
package vista

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for local precondition failures and HTTP status
// classification. Use errors.Is(err, vista.ErrNotFound) to check.
var (
	ErrNotAuthenticated = errors.New("vista: not authenticated")
	ErrFileNotFound     = errors.New("vista: file not found")
	ErrUnsupportedType  = errors.New("vista: unsupported file type")

	ErrBadRequest   = errors.New("vista: bad request")
	ErrUnauthorized = errors.New("vista: unauthorized")
	ErrForbidden    = errors.New("vista: forbidden")
	ErrNotFound     = errors.New("vista: not found")
	ErrServerError  = errors.New("vista: server error")

	// ErrRejected marks a 2xx response whose body carries an embedded
	// error member. The publishing API reports some failures this way.
	ErrRejected = errors.New("vista: request rejected")
)

// APIError wraps a sentinel error with the HTTP status code and the API
// error message body for debugging.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if errors.Is(e.Err, ErrRejected) {
		return fmt.Sprintf("vista: API rejected request: %s", e.Message)
	}

	return fmt.Sprintf("vista: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
