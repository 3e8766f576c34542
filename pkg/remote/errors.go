package remote

import (
	"fmt"
)

// TransportError means a request could not reach the backend or the
// backend refused it (network failure, non-success status, or a parsed
// acknowledgement reporting failure).
type TransportError struct {
	Resource   string
	Op         string
	StatusCode int    // 0 when the request never completed
	Message    string // backend-reported message, if any
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s transport error: %v", e.Resource, e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s transport error (status %d): %s",
			e.Resource, e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s %s transport error (status %d)",
			e.Resource, e.Op, e.StatusCode)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means a response body could not be classified
// into any accepted envelope or acknowledgement shape.
type MalformedResponseError struct {
	Resource string
	Snippet  string // leading bytes of the offending body
	Err      error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s malformed response: %v (body %q)", e.Resource, e.Err, e.Snippet)
	}
	return fmt.Sprintf("%s malformed response (body %q)", e.Resource, e.Snippet)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
