package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBaseURL is returned when the base URL is empty.
	// Every URL path in the system is resolved against the base URL,
	// so an empty value cannot produce a single valid request.
	ErrNoBaseURL = errors.New("no base URL specified")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no fetches run at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidRenderPasses is returned when the render pass bound is not
	// positive. At least one typesetting pass is required to produce output.
	ErrInvalidRenderPasses = errors.New("invalid render passes: must be positive")

	// ErrCacheOnlyWithForce is returned when --cache-only and --force are
	// combined. Force demands a network refetch, which cache-only forbids.
	ErrCacheOnlyWithForce = errors.New("conflicting flags: --cache-only and --force cannot be used together")

	// ErrInvalidProblemRange is returned when the --problems expression
	// cannot be parsed. Expected forms: "7", "1,3,5", "10-20", "1,5-10".
	ErrInvalidProblemRange = errors.New("invalid problem range: expected forms like \"7\", \"1,3,5\", or \"5-10\"")
)
