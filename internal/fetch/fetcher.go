package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/pveierland/project-euler-offline/internal/cache"
)

// Options control a single retrieval.
type Options struct {
	// CacheOnly forbids network access. A cache miss fails with
	// ErrNotCached instead of fetching.
	CacheOnly bool

	// Force refetches even when a cache entry exists. The cache file is
	// not rewritten (entries are first-wins); Force only refreshes the
	// bytes used by the current invocation.
	Force bool
}

// ProblemPath returns the site URL path for a problem page.
func ProblemPath(problemID int) string {
	return fmt.Sprintf("problem=%d", problemID)
}

// Fetcher retrieves URL paths through the local cache.
// A cache hit never touches the network; a miss performs one GET and
// persists the body before returning it. All methods are idempotent with
// respect to the cache.
type Fetcher struct {
	// client performs the HTTP requests.
	client *Client

	// store is the file-per-URL artifact cache.
	store *cache.Store

	// index records fetch metadata. May be nil when no index is wanted.
	index *cache.Index

	// baseURL is the site root all URL paths resolve against.
	// Always ends with a slash.
	baseURL string

	// logger for structured logging.
	logger *slog.Logger

	// fetched counts retrievals that required network I/O.
	// Atomic because batch fetching touches it from multiple goroutines.
	fetched atomic.Int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithIndex attaches a fetch index that records every completed fetch.
func WithIndex(index *cache.Index) FetcherOption {
	return func(f *Fetcher) {
		f.index = index
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher for the given site base URL.
func NewFetcher(client *Client, store *cache.Store, baseURL string, opts ...FetcherOption) *Fetcher {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	f := &Fetcher{
		client:  client,
		store:   store,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the absolute URL for a site URL path.
func (f *Fetcher) URL(urlPath string) string {
	return f.baseURL + strings.TrimPrefix(urlPath, "/")
}

// FetchedCount returns the number of retrievals that performed network I/O.
func (f *Fetcher) FetchedCount() int {
	return int(f.fetched.Load())
}

// Retrieve returns the bytes for a site URL path, consulting the cache
// first unless the options say otherwise.
func (f *Fetcher) Retrieve(ctx context.Context, urlPath string, opts Options) ([]byte, error) {
	url := f.URL(urlPath)

	if !opts.Force {
		if data, err := f.store.Read(urlPath); err == nil {
			f.logger.Debug("cache hit", "urlPath", urlPath)
			return data, nil
		}
	}

	if opts.CacheOnly {
		return nil, &Error{URL: url, Err: ErrNotCached}
	}

	f.logger.Debug("fetching", "url", url)
	data, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	f.fetched.Add(1)

	localPath, err := f.store.Write(urlPath, data)
	if err != nil {
		return nil, fmt.Errorf("failed to persist %s: %w", url, err)
	}

	if f.index != nil {
		entry := cache.Entry{
			URL:           url,
			LocalPath:     localPath,
			StatusCode:    200,
			ContentLength: int64(len(data)),
		}
		if err := f.index.Record(ctx, entry); err != nil {
			// The artifact is already safely cached; a failed index
			// write only loses history.
			f.logger.Warn("failed to record fetch", "url", url, "error", err)
		}
	}

	return data, nil
}

// EnsureFetched guarantees that the page for a problem and any given
// attachment URL paths exist in the cache, fetching whatever is missing.
// It returns the local cache paths of all artifacts, page first.
func (f *Fetcher) EnsureFetched(ctx context.Context, problemID int, attachments ...string) ([]string, error) {
	paths := make([]string, 0, 1+len(attachments))

	for _, urlPath := range append([]string{ProblemPath(problemID)}, attachments...) {
		if _, err := f.Retrieve(ctx, urlPath, Options{}); err != nil {
			return nil, err
		}
		localPath, err := f.store.Path(urlPath)
		if err != nil {
			return nil, err
		}
		paths = append(paths, localPath)
	}
	return paths, nil
}
