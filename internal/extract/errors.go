package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when a page lacks the statement container.
	ErrNoContent = errors.New("extract: page has no problem content container")

	// ErrNoTitle is returned when the page title does not carry a problem
	// number and name.
	ErrNoTitle = errors.New("extract: page title missing or malformed")

	// ErrIDMismatch is returned when the page title carries a different
	// problem number than the one requested.
	ErrIDMismatch = errors.New("extract: page title does not match requested problem")

	// ErrNoProblemsTable is returned when the recent-problems page lacks
	// the problems table.
	ErrNoProblemsTable = errors.New("extract: page has no problems table")
)

// Error describes a failed extraction for one page. Extraction never
// produces a partial result: on error the page yields no model at all.
type Error struct {
	// ProblemID is the problem being extracted, or zero for appendix and
	// discovery pages.
	ProblemID int

	// URLPath is the site-relative path of the page, when known.
	URLPath string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.ProblemID > 0:
		return fmt.Sprintf("extract problem %d: %v", e.ProblemID, e.Err)
	case e.URLPath != "":
		return fmt.Sprintf("extract %s: %v", e.URLPath, e.Err)
	default:
		return fmt.Sprintf("extract: %v", e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
