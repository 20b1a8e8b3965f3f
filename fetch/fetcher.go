// Package fetch retrieves documentation content over a narrow transport
// contract, with bounded exponential backoff, jitter, and error
// classification so failures never amplify load on the documentation host.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/KiidxAtlas/pyhover"
	"golang.org/x/time/rate"
)

// Ensure Fetcher implements pyhover.Fetcher at compile time.
var _ pyhover.Fetcher = (*Fetcher)(nil)

// Fetcher resolves a key to a documentation URL through the injected
// dictionary and retrieves it through the transport. It holds no cache
// state and no locks across network calls.
type Fetcher struct {
	transport pyhover.Transport
	dict      pyhover.Dictionary

	baseURL        string
	maxAttempts    int
	baseDelay      time.Duration
	maxDelay       time.Duration
	jitterFraction float64
	attemptTimeout time.Duration
	limiter        *rate.Limiter

	// sleep and jitter are injectable so tests run without real delays.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64

	// observe, if set, receives the attempt log when a fetch settles.
	observe func(key pyhover.ResolutionKey, attempts []pyhover.FetchAttempt)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSleep overrides how the fetcher waits between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) { f.sleep = fn }
}

// WithJitterSource overrides the jitter random source. The function must
// return values in [0, 1).
func WithJitterSource(fn func() float64) Option {
	return func(f *Fetcher) { f.jitter = fn }
}

// WithLimiter overrides the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithAttemptObserver registers a callback invoked with the attempt log each
// time a fetch settles, success or failure.
func WithAttemptObserver(fn func(key pyhover.ResolutionKey, attempts []pyhover.FetchAttempt)) Option {
	return func(f *Fetcher) { f.observe = fn }
}

// NewFetcher creates a Fetcher from a normalized configuration.
func NewFetcher(transport pyhover.Transport, dict pyhover.Dictionary, cfg pyhover.Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		transport:      transport,
		dict:           dict,
		baseURL:        fmt.Sprintf(cfg.DocBaseURL, cfg.VersionTag),
		maxAttempts:    cfg.MaxRetries,
		baseDelay:      cfg.BaseDelay(),
		maxDelay:       cfg.MaxDelay(),
		jitterFraction: cfg.JitterFraction,
		attemptTimeout: cfg.PerAttemptTimeout(),
		limiter:        rate.NewLimiter(rate.Limit(cfg.FetchRatePerSec), 1),
		sleep:          sleepContext,
		jitter:         rand.Float64,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the documentation URL the fetcher would request for a key, or
// false when the dictionary does not know the symbol.
func (f *Fetcher) URL(key pyhover.ResolutionKey) (string, bool) {
	entry, ok := f.dict.Lookup(key.Symbol, key.Category)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(f.baseURL, "/") + "/" + strings.TrimPrefix(entry.Slug, "/"), true
}

// Fetch retrieves the documentation payload for key.
//
// The first attempt is immediate; retry i waits
// min(maxDelay, baseDelay*2^(i-1)) perturbed by the jitter fraction, or the
// server's Retry-After hint when that is longer. Network errors, 5xx and 429
// are retryable; any other 4xx is fatal and consumes no further attempts.
func (f *Fetcher) Fetch(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
	url, ok := f.URL(key)
	if !ok {
		return nil, &pyhover.FetchError{
			Kind:     pyhover.FetchFatal,
			Key:      key,
			Cause:    pyhover.Errorf(pyhover.ENOTFOUND, "no documentation entry for %s", key),
			Attempts: nil,
		}
	}

	var attempts []pyhover.FetchAttempt
	var lastCause error
	var retryHint time.Duration

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		var delay time.Duration
		if attempt > 1 {
			delay = f.backoff(attempt - 1)
			if retryHint > delay {
				delay = retryHint
			}
			if err := f.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
		retryHint = 0

		body, outcome, cause := f.attempt(ctx, url)
		attempts = append(attempts, pyhover.FetchAttempt{
			AttemptNumber: attempt,
			DelayBefore:   delay,
			Outcome:       outcome,
		})

		switch outcome {
		case pyhover.AttemptSuccess:
			f.settled(key, attempts)
			return body, nil
		case pyhover.AttemptFatalFailure:
			f.settled(key, attempts)
			return nil, &pyhover.FetchError{Kind: pyhover.FetchFatal, Key: key, Cause: cause, Attempts: attempts}
		}

		lastCause = cause
		var hinted *hintedError
		if errors.As(cause, &hinted) {
			retryHint = hinted.retryAfter
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	f.settled(key, attempts)
	return nil, &pyhover.FetchError{Kind: pyhover.FetchExhausted, Key: key, Cause: lastCause, Attempts: attempts}
}

func (f *Fetcher) settled(key pyhover.ResolutionKey, attempts []pyhover.FetchAttempt) {
	if f.observe != nil {
		f.observe(key, attempts)
	}
}

// attempt performs one transport request with its own timeout.
func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, pyhover.AttemptOutcome, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, pyhover.AttemptRetryableFailure, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.attemptTimeout)
	defer cancel()

	resp, err := f.transport.Request(attemptCtx, url, map[string]string{
		"Accept": "text/html, text/plain",
	})
	if err != nil {
		// Network-level failure: connection reset, timeout, DNS.
		return nil, pyhover.AttemptRetryableFailure, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.Body, pyhover.AttemptSuccess, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, pyhover.AttemptRetryableFailure, &hintedError{
			status:     resp.StatusCode,
			retryAfter: resp.RetryAfter,
		}
	default:
		return nil, pyhover.AttemptFatalFailure, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
}

// backoff computes the delay before retry n (n >= 1), jittered to avoid
// synchronized retry storms.
func (f *Fetcher) backoff(n int) time.Duration {
	d := f.baseDelay << (n - 1)
	if d > f.maxDelay || d <= 0 {
		d = f.maxDelay
	}
	if f.jitterFraction > 0 {
		// Uniform in (-jitterFraction, +jitterFraction).
		factor := 1 + f.jitterFraction*(2*f.jitter()-1)
		d = time.Duration(float64(d) * factor)
	}
	return d
}

// hintedError carries a retryable HTTP status and an optional server retry
// hint.
type hintedError struct {
	status     int
	retryAfter time.Duration
}

func (e *hintedError) Error() string {
	return fmt.Sprintf("HTTP %d", e.status)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
