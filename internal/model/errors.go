package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoBody is returned when a detail page has no element matching the body selector.
var ErrNoBody = errors.New("description body not found")

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	URL        string
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
