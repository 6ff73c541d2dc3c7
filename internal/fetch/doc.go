// Package fetch retrieves problem pages and attachment files over HTTP
// with local caching.
//
// # Components
//
//   - Client: a thin HTTP GET wrapper carrying the User-Agent, timeout,
//     and body size limit. Redirects are not followed because the site
//     answers HTTP 302 for unpublished problems, and that condition must
//     surface to the caller.
//   - Fetcher: combines the Client with the cache: a cache hit performs
//     no network I/O, a miss fetches and persists the body. Re-invoking
//     the Fetcher with a warm cache is free, which is what makes
//     interrupted runs resumable.
//   - Batch: fetches many problem pages with a bounded concurrency limit.
//     The default limit of one keeps fetching strictly sequential.
//
// Failures carry the URL and HTTP status via *Error and are fatal to the
// invocation; nothing is retried automatically. The cache guarantees a
// re-run skips everything already fetched.
package fetch
