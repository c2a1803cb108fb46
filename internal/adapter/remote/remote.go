// Package remote holds the error shape shared by the backend clients.
package remote

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx response from a downstream backend.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// NewStatusError creates a StatusError from a response status and body.
func NewStatusError(status int, body []byte) *StatusError {
	return &StatusError{Status: status, Body: string(body)}
}

// StatusOf extracts the downstream status code from err, or 0 when err did
// not originate from an HTTP response.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
