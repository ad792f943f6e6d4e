package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a server-reported failure. Message is the "error" field of the
// response body, suitable for showing to the user.
type APIError struct {
	StatusCode int
	Message    string
	wrapped    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.wrapped }
