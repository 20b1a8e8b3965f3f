// Package http provides the HTTP implementation of pyhover.Transport.
package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/KiidxAtlas/pyhover"
)

// DefaultTimeout is the default timeout for HTTP requests. Per-attempt
// deadlines from the fetch layer arrive through the request context and may
// be shorter.
const DefaultTimeout = 10 * time.Second

// MaxBodyBytes bounds how much of a response body is read. Documentation
// pages beyond this are truncated rather than ballooning the cache.
const MaxBodyBytes = 4 << 20

// Ensure Transport implements pyhover.Transport at compile time.
var _ pyhover.Transport = (*Transport)(nil)

// Transport performs documentation requests over plain HTTP.
type Transport struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

// WithClient overrides the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// NewTransport creates a new HTTP-based Transport.
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		t.client = &http.Client{
			Timeout: t.timeout,
		}
	}

	return t
}

// Request performs a GET against url with the given headers. HTTP-level
// rejections come back as a response; a non-nil error means the request
// never produced one.
func (t *Transport) Request(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}

	return &pyhover.TransportResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
	}, nil
}

// parseRetryAfter reads a Retry-After header value, which is either a delay
// in seconds or an HTTP date. Returns zero when absent or unparseable.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		d := at.Sub(now)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}
