package pyhover

import (
	"context"
	"fmt"
	"time"
)

// Transport performs a single network request. The core depends only on this
// narrow contract, not on any specific networking library. A non-nil error
// means the request never produced a response (connection reset, timeout,
// DNS failure); HTTP-level rejections come back as a Response.
type Transport interface {
	Request(ctx context.Context, url string, headers map[string]string) (*TransportResponse, error)
}

// TransportResponse is the outcome of a transport request.
type TransportResponse struct {
	StatusCode int
	Body       []byte

	// RetryAfter is a server-provided retry hint (from a 429 or 503), zero
	// when absent.
	RetryAfter time.Duration
}

// Fetcher retrieves documentation content for a resolution key, retrying
// transient failures. Implementations must not hold any cache lock while a
// network call is outstanding.
type Fetcher interface {
	Fetch(ctx context.Context, key ResolutionKey) ([]byte, error)
}

// FetchErrorKind classifies a terminal fetch failure.
type FetchErrorKind string

// FetchErrorKind constants.
const (
	// FetchFatal is a non-retryable transport rejection: the resource does
	// not exist or the request is malformed, so retrying cannot help.
	FetchFatal FetchErrorKind = "fatal"

	// FetchExhausted means every allowed attempt failed with a retryable
	// error.
	FetchExhausted FetchErrorKind = "exhausted"
)

// AttemptOutcome records how a single fetch attempt ended.
type AttemptOutcome string

// AttemptOutcome constants.
const (
	AttemptSuccess          AttemptOutcome = "success"
	AttemptRetryableFailure AttemptOutcome = "retryable"
	AttemptFatalFailure     AttemptOutcome = "fatal"
)

// FetchAttempt is a transient record of one attempt within a fetch. It is
// kept on the terminal error for diagnostics and never persisted.
type FetchAttempt struct {
	AttemptNumber int
	DelayBefore   time.Duration
	Outcome       AttemptOutcome
}

// FetchError is the terminal error of a fetch.
type FetchError struct {
	Kind     FetchErrorKind
	Key      ResolutionKey
	Cause    error
	Attempts []FetchAttempt
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s after %d attempt(s): %v", e.Key, e.Kind, len(e.Attempts), e.Cause)
}

// Unwrap returns the last underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Cause
}
