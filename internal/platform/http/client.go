// Package http provides the shared outbound HTTP client: rate limited,
// with exponential-backoff retries on transport and status errors.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Client is a wrapper for http.Client with rate limiting and retries.
type Client struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	maxRetry   time.Duration
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new HTTP client with rate limiting.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
		Limiter:  rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		maxRetry: opts.MaxRetryTimeout,
	}
}

// DoRequest performs an HTTP request with rate limiting and retries.
// Non-200 responses count as retryable failures.
func (c *Client) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &StatusError{StatusCode: resp.StatusCode}
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = c.maxRetry

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}

	return resp, nil
}

// StatusError represents an error due to a non-200 HTTP status code.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-200 status code: %d", e.StatusCode)
}
