package api

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultBaseURL = "https://www.reddit.com"

	// userAgent is a fixed contract with the upstream service; requests
	// without a descriptive identification string risk throttling.
	userAgent = "snoosift/1.0 (Reddit data retrieval CLI; +https://github.com/snoosift/snoosift)"

	// pageSize is the number of items requested per listing fetch. Always
	// 100 regardless of the overall limit, so a raw page shorter than this
	// means the upstream is exhausted.
	pageSize = 100

	requestTimeout = 30 * time.Second

	// Politeness delay bounds between listing fetches.
	defaultDelayMin = 1 * time.Second
	defaultDelayMax = 5 * time.Second
)

// StatusError is returned when the API answers with a non-2xx status. It
// carries the status code and response body for diagnostics.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("reddit returned status %d: %s", e.Code, body)
}

// Client talks to Reddit's public JSON API. The underlying http.Client is
// shared by every fetch of an invocation, including concurrent morechildren
// sub-fetches.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
	delayMin   time.Duration
	delayMax   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger enables structured request logging.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithBaseURL points the client at a different host. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDelay sets the pacing bounds between listing fetches. A zero max
// disables pacing entirely.
func WithDelay(min, max time.Duration) Option {
	return func(c *Client) {
		c.delayMin = min
		c.delayMax = max
	}
}

// NewClient creates a Reddit API client with a 30 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		delayMin:   defaultDelayMin,
		delayMax:   defaultDelayMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET against path (relative, e.g. "/r/golang/about.json")
// and returns the raw response body. Connectivity failures and non-2xx
// statuses are both fatal to the in-flight call; there is no retry here.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	rawURL := c.baseURL + path
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug("GET", "endpoint", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("request failed", "endpoint", path, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.logger != nil {
			c.logger.Error("API error", "endpoint", path, "status", resp.StatusCode)
		}
		return nil, fmt.Errorf("GET %s: %w", path, &StatusError{Code: resp.StatusCode, Body: string(body)})
	}

	return body, nil
}

// pace sleeps a uniformly random duration between the configured delay
// bounds. It is a politeness delay, not a correctness requirement, and
// returns early when the context is canceled.
func (c *Client) pace(ctx context.Context) error {
	if c.delayMax <= 0 {
		return nil
	}
	d := c.delayMin
	if span := c.delayMax - c.delayMin; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
