// Package retry wraps outbound HTTP calls with bounded exponential backoff.
// The Gemini API sheds load with 429s and the occasional 5xx; both are worth
// another attempt, anything else is returned to the caller as-is.
package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultMaxRetries        = 3
	defaultInitialRetryDelay = 1 * time.Second
	defaultMaxRetryDelay     = 10 * time.Second
)

// Client retries transient failures with exponential backoff. The delay
// doubles after each attempt, capped at the configured maximum.
type Client struct {
	maxRetries        int
	initialRetryDelay time.Duration
	maxRetryDelay     time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithMaxRetries sets the maximum number of retry attempts
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithInitialRetryDelay sets the delay before the first retry
func WithInitialRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialRetryDelay = d
		}
	}
}

// WithMaxRetryDelay caps the backoff delay
func WithMaxRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxRetryDelay = d
		}
	}
}

// NewClient creates a retrying HTTP client
func NewClient(opts ...Option) *Client {
	c := &Client{
		maxRetries:        defaultMaxRetries,
		initialRetryDelay: defaultInitialRetryDelay,
		maxRetryDelay:     defaultMaxRetryDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// retryable reports whether the attempt is worth repeating: network errors,
// rate limiting, and server-side failures.
func retryable(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

// Do executes the request, retrying transient failures until the attempt
// budget or the context runs out.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	var resp *http.Response
	delay := c.initialRetryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				if lastErr != nil {
					return nil, fmt.Errorf(
						"context cancelled after %d attempts: %w",
						attempt,
						lastErr,
					)
				}
				return nil, ctx.Err()
			case <-time.After(delay):
				delay *= 2
				if delay > c.maxRetryDelay {
					delay = c.maxRetryDelay
				}
			}
		}

		// Clone the request for retry (body might be consumed)
		reqClone := req.Clone(ctx)

		resp, lastErr = http.DefaultClient.Do(reqClone)

		if !retryable(lastErr, resp) {
			return resp, lastErr
		}

		// Close response body before retry to prevent resource leak
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
	}

	return resp, lastErr
}
