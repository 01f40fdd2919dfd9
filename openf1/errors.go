package openf1

import (
	"fmt"
)

// UpstreamError represents a non-success response from the OpenF1 API
type UpstreamError struct {
	Resource   string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openf1 %s request failed: status %d: %s", e.Resource, e.StatusCode, e.Body)
}

// IsNotFound checks if the upstream answered 404
func (e *UpstreamError) IsNotFound() bool {
	return e.StatusCode == 404
}

// TransportError represents a failure to reach the OpenF1 API
type TransportError struct {
	Resource string
	URL      string
	Err      error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("openf1 %s request to %s failed: %v", e.Resource, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
