package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is prefixed to "{id}.json" to build a thread URL.
	DefaultBaseURL = "https://www.reddit.com/comments/"

	requestTimeout = 10 * time.Second
	maxConcurrent  = 2
)

// Client fetches raw thread payloads.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the thread endpoint prefix.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sends a User-Agent header. Without it no custom headers are set.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a new thread client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ThreadURL returns the JSON endpoint for a thread identifier.
func (c *Client) ThreadURL(id string) string {
	return c.baseURL + id + ".json"
}

// FetchThread returns the raw JSON body for a thread.
func (c *Client) FetchThread(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("empty thread identifier")
	}
	return c.get(ctx, c.ThreadURL(id))
}

// FetchThreads fetches several threads concurrently. Bodies are returned in
// the same order as ids; the first failure cancels the rest.
func (c *Client) FetchThreads(ctx context.Context, ids []string) ([][]byte, error) {
	results := make([][]byte, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			body, err := c.FetchThread(ctx, id)
			if err != nil {
				return fmt.Errorf("thread %s: %w", id, err)
			}
			mu.Lock()
			results[i] = body
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// get fetches a URL and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return body, nil
}
