// Package http provides the HTTP-based implementation of tshiau.Fetcher.
// It retrieves dictionary pages concurrently under a bounded in-flight
// limit, with per-request timeouts, rate limiting, retry with backoff,
// and an optional on-disk page cache.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/wrlin/tshiau"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Defaults for I/O-bound dictionary lookups.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultConcurrency  = 16
	DefaultRateLimit    = 8.0 // requests per second toward the dictionary host
)

// DefaultRetryDelays returns the backoff delays for transport retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Client implements tshiau.Fetcher at compile time.
var _ tshiau.Fetcher = (*Client)(nil)

// Client fetches dictionary pages over HTTP.
type Client struct {
	client      *http.Client
	template    string
	timeout     time.Duration
	concurrency int
	retryDelays []time.Duration
	limiter     *rate.Limiter
	cache       tshiau.PageCache
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithConcurrency sets the maximum number of in-flight requests per batch.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = n
	}
}

// WithRetryDelays sets the backoff delays between transport retries.
// Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// WithRateLimit sets the request rate toward the dictionary host in
// requests per second. Burst is fixed at 1 (no bursting).
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCache sets the on-disk page cache. Cached keys short-circuit network
// access; successful fetches are written back before the batch returns.
func WithCache(cache tshiau.PageCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithURLTemplate sets the dictionary endpoint template. The template must
// contain exactly one %s slot for the query-escaped key.
func WithURLTemplate(template string) Option {
	return func(c *Client) {
		c.template = template
	}
}

// NewClient creates a new dictionary Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		template:    DefaultURLTemplate,
		timeout:     DefaultFetchTimeout,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retryDelays == nil {
		c.retryDelays = DefaultRetryDelays()
	}
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Limit(DefaultRateLimit), 1)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// FetchAll retrieves the dictionary page for every key in the batch.
// Keys are deduplicated before dispatch; the returned map has exactly one
// outcome per distinct key. FetchAll returns after every task has finished;
// one key's failure never cancels the others. The only returned error is
// context cancellation.
func (c *Client) FetchAll(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
	distinct := dedupe(keys)

	resultCh := make(chan tshiau.FetchOutcome, len(distinct))

	// Workers always return nil so a failed key never cancels the group;
	// failures travel in the outcome itself.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, key := range distinct {
		g.Go(func() error {
			resultCh <- c.fetchKey(gctx, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(resultCh)

	outcomes := make(map[string]tshiau.FetchOutcome, len(distinct))
	for outcome := range resultCh {
		outcomes[outcome.Key] = outcome
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// fetchKey resolves one key: cache first, then network with retries.
func (c *Client) fetchKey(ctx context.Context, key string) tshiau.FetchOutcome {
	if c.cache != nil {
		if html, ok := c.cache.Get(key); ok {
			return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusFound, HTML: html}
		}
	}

	url := AddressFor(c.template, key)

	maxAttempts := len(c.retryDelays) + 1 // 1 initial + N retries
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: err}
		}

		outcome, retryable := c.fetchOnce(ctx, key, url)
		if !retryable {
			if outcome.Status == tshiau.StatusFound && c.cache != nil {
				// A failed cache write is not a fetch failure.
				_ = c.cache.Put(key, outcome.HTML)
			}
			return outcome
		}
		lastErr = outcome.Err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: ctx.Err()}
		case <-time.After(c.retryDelays[attempt]):
		}
	}

	return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: lastErr}
}

// fetchOnce performs a single HTTP GET. It reports whether the failure is
// retryable: transport errors and unexpected statuses are, a 404 is a
// definitive not-found answer and is not.
func (c *Client) fetchOnce(ctx context.Context, key, url string) (outcome tshiau.FetchOutcome, retryable bool) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: err}, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: err}, true
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: err}, true
		}
		return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusFound, HTML: string(body)}, false
	case resp.StatusCode == http.StatusNotFound:
		return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusNotFound}, false
	default:
		err := tshiau.Errorf(tshiau.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
		return tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: err}, true
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	var distinct []string
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, key)
	}
	return distinct
}
