package ratelimit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"discern/internal/identity"
	"discern/internal/logging"
)

// Client is a rate-limited HTTP GET client with retry semantics suitable
// for the MusicBrainz family of services: connection failures and HTTP 503
// are retried with exponential backoff, every other non-200 status fails
// immediately.
type Client struct {
	httpClient *http.Client
	pacer      *Pacer
	userAgent  string
	maxRetries int
	component  string
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// Options configures a Client. Zero values get sensible defaults.
type Options struct {
	// Interval is the minimum spacing between requests.
	Interval time.Duration
	// UserAgent is sent on every request. MusicBrainz rejects anonymous
	// clients, so callers should always set it.
	UserAgent string
	// MaxRetries is the total number of attempts per request, not the
	// number of re-attempts. Defaults to 3.
	MaxRetries int
	// Timeout bounds each individual attempt. Defaults to 15s.
	Timeout time.Duration
	// Component names the client in log output.
	Component string
	Logger    *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Component == "" {
		opts.Component = "ratelimit"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		pacer:      NewPacer(opts.Interval),
		userAgent:  opts.UserAgent,
		maxRetries: opts.MaxRetries,
		component:  opts.Component,
		logger:     logging.NewComponentLogger(logger, opts.Component),
		sleep:      time.Sleep,
	}
}

// WithClock replaces the time source used for pacing and backoff. Test use.
func (c *Client) WithClock(now func() time.Time, sleep func(time.Duration)) *Client {
	c.pacer.WithClock(now, sleep)
	if sleep != nil {
		c.sleep = sleep
	}
	return c
}

// Get fetches rawURL with the given query parameters, honoring the pacer
// before every attempt. On success it returns the response body. Transient
// failures (connection errors, HTTP 503) are retried with 2^attempt second
// backoff; after maxRetries attempts the error wraps identity.ErrExhausted.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.pacer.Wait()
		body, err := c.getOnce(ctx, rawURL, params)
		if err == nil {
			return body, nil
		}
		if !identity.Retryable(err) {
			return nil, err
		}
		lastErr = err
		if attempt < c.maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.logger.Warn("request failed, backing off",
				logging.String("url", rawURL),
				logging.Int(logging.FieldAttempt, attempt),
				logging.Duration("backoff", backoff),
				logging.Error(err))
			c.sleep(backoff)
		}
	}
	return nil, identity.Wrap(identity.ErrExhausted, c.component, "get",
		fmt.Sprintf("giving up after %d attempts", c.maxRetries), lastErr)
}

func (c *Client) getOnce(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, identity.Wrap(identity.ErrPermanent, c.component, "get", "build request", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, identity.Wrap(identity.ErrTransient, c.component, "get", "connection failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, identity.Wrap(identity.ErrTransient, c.component, "get",
			"service unavailable", fmt.Errorf("status %d", resp.StatusCode))
	default:
		return nil, identity.Wrap(identity.ErrPermanent, c.component, "get",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, identity.Wrap(identity.ErrTransient, c.component, "get", "read body", err)
	}
	return body, nil
}
