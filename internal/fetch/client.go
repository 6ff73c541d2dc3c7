package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pveierland/project-euler-offline/internal/config"
)

// Client performs HTTP GET requests for problem pages and attachments.
//
// Design decision: We use a struct wrapping http.Client rather than bare
// package functions because:
//  1. Request configuration (User-Agent, timeouts, limits) should be
//     consistent across all fetches
//  2. Connection pooling works better with a shared client
//  3. Tests can point the same code at an httptest server
type Client struct {
	// httpClient is the underlying HTTP client.
	httpClient *http.Client

	// userAgent is the User-Agent header for all requests.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from unexpected responses.
	maxBodySize int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// NewClient creates a Client with the given options.
//
// Redirect following is disabled: projecteuler.net answers HTTP 302 for
// problem numbers that are not published, and that status must reach the
// caller instead of being silently resolved to the front page.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: config.DefaultTimeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the URL and returns the response body.
//
// Behavior by response:
//   - 200 with a payload: the body bytes are returned.
//   - 200 with an empty body, or 302: *Error wrapping ErrMissingData.
//     The site 302s for unpublished problems, so this is the "no such
//     problem yet" signal rather than a redirect to follow.
//   - any other status: *Error naming the URL and status.
//   - transport failure: *Error with StatusCode 0 wrapping the cause.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Handled below.
	case http.StatusFound:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: ErrMissingData}
	default:
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain
		return nil, &Error{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, &Error{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body exceeds %d bytes", c.maxBodySize),
		}
	}
	if len(data) == 0 {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: ErrMissingData}
	}
	return data, nil
}
