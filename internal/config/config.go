package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values mirror the behavior of projecteuler.net and typical LaTeX
// toolchains; all of them can be overridden via CLI flags or the
// configuration file.
const (
	// DefaultBaseURL is the Project Euler site root. All problem pages,
	// about pages, and resources are addressed relative to this URL.
	DefaultBaseURL = "https://projecteuler.net/"

	// DefaultOutputDir is where the assembled document, downloaded
	// resources, and rendered PDF are written. Relative to the working
	// directory, matching the common "build output next to invocation"
	// expectation for document generators.
	DefaultOutputDir = "out"

	// DefaultTimeout is the per-request timeout. Problem pages are a few
	// kilobytes and data files stay under a megabyte, so 60 seconds is
	// generous even on slow links while still failing hung connections.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBodySize limits the response body size to read.
	// 10MB covers every published data file and image with a wide margin
	// while preventing memory exhaustion from unexpected responses.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultBatchSize of 1 keeps fetching strictly sequential, which is
	// both polite to the site and sufficient for the ~1000-problem corpus.
	// Users can raise it via --batch for faster initial downloads.
	DefaultBatchSize = 1

	// DefaultEngine is the LaTeX engine invoked by the renderer.
	// pdflatex is the most widely installed engine that supports the
	// attachfile and animate packages used by the template.
	DefaultEngine = "pdflatex"

	// DefaultMaxRenderPasses bounds the fixed-point typesetting loop.
	// Page numbers and the table of contents stabilize after two or three
	// passes in practice; more passes indicate a pathological document.
	DefaultMaxRenderPasses = 3

	// DefaultUserAgent identifies this tool in HTTP requests.
	// A descriptive User-Agent lets site operators identify the traffic.
	DefaultUserAgent = "project-euler-offline/2.0 (+https://github.com/pveierland/project-euler-offline)"

	// AppName is the application name used for XDG directory paths.
	AppName = "euler-offline"
)

// Config holds all configuration options for a fetch or render invocation.
// It is populated from CLI flags plus the optional configuration file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, RenderConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the site root that all URL paths are resolved against.
	// Must end with a slash.
	BaseURL string

	// OutputDir is the directory for assembled sources, downloaded
	// resources, and rendered PDFs.
	OutputDir string

	// CacheDir is the directory holding one file per fetched URL.
	// Defaults to the XDG cache directory for the application.
	CacheDir string

	// ConfigFilePath is an explicit configuration file path from --config.
	// Empty means search the standard locations.
	ConfigFilePath string

	// Problems is the raw problem selection expression from --problems
	// (e.g. "1,5-10,42"). Empty means all published problems.
	Problems string

	// SourceModsDir is a directory of hand-written <id>.tex files that
	// override extraction for individual problems. Empty disables
	// source mods.
	SourceModsDir string

	// TemplatePath overrides the embedded document template.
	TemplatePath string

	// ReportFile is where to write the markdown build summary.
	// Empty disables the summary.
	ReportFile string

	// CacheOnly restricts all retrieval to the local cache; any cache
	// miss is an error instead of a network request.
	CacheOnly bool

	// Force refetches pages even when a cache entry exists. Cache files
	// are still never overwritten; Force only refreshes the in-memory
	// data used by the current invocation.
	Force bool

	// Spaced selects the spaced layout variant for render.
	Spaced bool

	// PDF enables the typesetting step after assembly.
	PDF bool

	// BatchSize is the number of concurrent page fetches.
	BatchSize int

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxBodySize limits the response body size to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header for all requests.
	UserAgent string

	// Engine is the LaTeX engine binary name or path.
	Engine string

	// MaxRenderPasses bounds the typesetting fixed-point loop.
	MaxRenderPasses int
}

// NewConfig creates a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		OutputDir:       DefaultOutputDir,
		CacheDir:        XDGCacheDir(),
		BatchSize:       DefaultBatchSize,
		Timeout:         DefaultTimeout,
		MaxBodySize:     DefaultMaxBodySize,
		UserAgent:       DefaultUserAgent,
		Engine:          DefaultEngine,
		MaxRenderPasses: DefaultMaxRenderPasses,
	}
}

// XDGCacheDir returns the XDG cache directory for the application.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/euler-offline
// On macOS: ~/Library/Caches/euler-offline
// On Windows: %LOCALAPPDATA%\euler-offline\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGDataDir returns the XDG data directory for the application.
// The fetch index database lives here.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any network or filesystem
// work begins. We return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.MaxRenderPasses <= 0 {
		return ErrInvalidRenderPasses
	}
	if c.CacheOnly && c.Force {
		return ErrCacheOnlyWithForce
	}
	if c.Problems != "" {
		if _, err := ParseProblemRange(c.Problems); err != nil {
			return err
		}
	}
	return nil
}
