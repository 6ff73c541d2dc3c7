package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store errors.
var (
	// ErrNotCached is returned by Read when no entry exists for the URL
	// path. Callers in cache-only mode surface it; normal retrieval
	// treats it as "fetch now".
	ErrNotCached = errors.New("no cache entry for URL")

	// ErrUnsafePath is returned when a URL path would escape the cache
	// directory. Remote content decides these paths, so traversal must
	// be rejected rather than sanitized.
	ErrUnsafePath = errors.New("unsafe cache path")
)

// Store is the file-per-URL artifact cache.
// Each fetched URL is persisted as one file whose location is derived
// deterministically from the URL path relative to the site base URL, with
// nested directories mirrored (e.g. "resources/documents/0022_names.txt").
//
// Design decision: We keep raw response bodies as plain files rather than
// database blobs so that cached artifacts are directly usable: the
// typesetting engine reads images from the output tree, and users can
// inspect cached pages with ordinary tools. Metadata that benefits from
// querying lives in the Index instead.
type Store struct {
	// dir is the cache root directory.
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the local file path for a URL path, without touching the
// filesystem. It fails with ErrUnsafePath if the URL path would resolve
// outside the cache directory.
func (s *Store) Path(urlPath string) (string, error) {
	cleaned, err := safeRelPath(urlPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, cleaned), nil
}

// Has reports whether a cache entry exists for the URL path.
// Presence of the file means the fetch for that URL is complete.
func (s *Store) Has(urlPath string) bool {
	path, err := s.Path(urlPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// Read returns the cached bytes for the URL path, or ErrNotCached when no
// entry exists.
func (s *Store) Read(urlPath string) ([]byte, error) {
	path, err := s.Path(urlPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived and traversal-checked
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotCached, urlPath)
		}
		return nil, err
	}
	if len(data) == 0 {
		// Zero-length entries never count as fetched.
		return nil, fmt.Errorf("%w: %s", ErrNotCached, urlPath)
	}
	return data, nil
}

// Write persists the bytes for the URL path and returns the local file path.
// Entries are first-wins: if a complete entry already exists it is left
// untouched and its path is returned. The write itself goes through a
// temp file and rename so a crash cannot leave a partial entry behind.
func (s *Store) Write(urlPath string, data []byte) (string, error) {
	path, err := s.Path(urlPath)
	if err != nil {
		return "", err
	}

	if s.Has(urlPath) {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create cache subdirectory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()     //nolint:errcheck // Best effort cleanup
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return "", fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return "", fmt.Errorf("failed to close cache entry: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return "", fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return path, nil
}

// safeRelPath normalizes a URL path into a relative filesystem path and
// rejects anything that would escape the cache root.
func safeRelPath(urlPath string) (string, error) {
	trimmed := strings.TrimPrefix(urlPath, "/")
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}

	cleaned := filepath.Clean(filepath.FromSlash(trimmed))
	if cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) ||
		filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, urlPath)
	}
	return cleaned, nil
}
