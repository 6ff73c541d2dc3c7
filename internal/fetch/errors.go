package fetch

import (
	"errors"
	"fmt"
)

// Fetch errors.
//
// Design decision: We define specific error values rather than wrapping all
// errors generically. This allows callers to distinguish failure modes
// (e.g. "unpublished problem" from "network down") with errors.Is.
var (
	// ErrMissingData is returned when a URL yields no usable payload:
	// either HTTP 200 with an empty body, or HTTP 302, which the site
	// answers for problem numbers that are not published yet.
	ErrMissingData = errors.New("missing response payload")

	// ErrNotCached is returned in cache-only mode when a URL has no
	// cache entry. Network access is forbidden, so the data cannot be
	// obtained in this invocation.
	ErrNotCached = errors.New("not cached and cache-only mode is active")
)

// Error describes a failed fetch. It names the URL and, when the failure
// came from an HTTP response, the status code. It wraps the underlying
// cause so errors.Is/errors.As keep working through it.
type Error struct {
	// URL is the full request URL.
	URL string

	// StatusCode is the HTTP response status, or 0 when the request
	// never produced a response (network error).
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
