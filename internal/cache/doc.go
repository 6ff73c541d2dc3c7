// Package cache provides the local store for fetched remote artifacts.
//
// # Architecture
//
// The cache has two parts:
//
//   - Store: one file per fetched URL under the cache directory, addressed
//     by a deterministic path derived from the URL path. The existence of
//     the file is the single source of truth for "this URL has been
//     fetched"; absence triggers a re-fetch.
//   - Index: a SQLite database recording metadata for every completed
//     fetch (URL, local path, status code, size, timestamp). The index is
//     advisory: it feeds the build summary and fetch history, but never
//     decides whether a URL needs fetching.
//
// The store is append-only. Entries are written once via a temp-file
// rename and never overwritten, so interrupted runs leave either a complete
// entry or no entry, and re-entrant runs resume incrementally.
package cache
