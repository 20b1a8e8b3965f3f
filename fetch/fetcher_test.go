package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/fetch"
	"github.com/KiidxAtlas/pyhover/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = pyhover.ResolutionKey{Symbol: "len", Category: pyhover.CategoryBuiltin, VersionTag: "3.12"}

func testDict() *mock.Dictionary {
	return &mock.Dictionary{
		LookupFn: func(symbol string, category pyhover.Category) (pyhover.DictionaryEntry, bool) {
			if symbol == "len" && category == pyhover.CategoryBuiltin {
				return pyhover.DictionaryEntry{Slug: "library/functions.html#len"}, true
			}
			return pyhover.DictionaryEntry{}, false
		},
	}
}

func testConfig() pyhover.Config {
	cfg := pyhover.DefaultConfig()
	cfg.Normalize()
	return cfg
}

// noSleep records requested delays without waiting.
func noSleep(delays *[]time.Duration) fetch.Option {
	return fetch.WithSleep(func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	})
}

// centeredJitter pins the jitter factor to exactly 1.
func centeredJitter() fetch.Option {
	return fetch.WithJitterSource(func() float64 { return 0.5 })
}

func respondWith(codes ...int) (*mock.Transport, *int) {
	var calls int
	codesCopy := append([]int(nil), codes...)
	return &mock.Transport{
		RequestFn: func(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
			idx := calls
			calls++
			code := codesCopy[min(idx, len(codesCopy)-1)]
			return &pyhover.TransportResponse{StatusCode: code, Body: []byte("content")}, nil
		},
	}, &calls
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		transport, calls := respondWith(http.StatusOK)
		f := fetch.NewFetcher(transport, testDict(), testConfig())

		body, err := f.Fetch(context.Background(), testKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("content"), body)
		assert.Equal(t, 1, *calls)
	})

	t.Run("retries 503 twice then succeeds with three attempts", func(t *testing.T) {
		t.Parallel()

		transport, calls := respondWith(http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK)

		var delays []time.Duration
		var observed []pyhover.FetchAttempt
		f := fetch.NewFetcher(transport, testDict(), testConfig(),
			noSleep(&delays), centeredJitter(),
			fetch.WithAttemptObserver(func(_ pyhover.ResolutionKey, attempts []pyhover.FetchAttempt) {
				observed = attempts
			}),
		)

		body, err := f.Fetch(context.Background(), testKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("content"), body)
		assert.Equal(t, 3, *calls)

		require.Len(t, observed, 3)
		assert.Equal(t, pyhover.AttemptRetryableFailure, observed[0].Outcome)
		assert.Equal(t, pyhover.AttemptRetryableFailure, observed[1].Outcome)
		assert.Equal(t, pyhover.AttemptSuccess, observed[2].Outcome)

		// Exponential backoff: 1s then 2s with jitter pinned to 1.
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
	})

	t.Run("404 is fatal after exactly one attempt", func(t *testing.T) {
		t.Parallel()

		transport, calls := respondWith(http.StatusNotFound)
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), testConfig(), noSleep(&delays))

		_, err := f.Fetch(context.Background(), testKey)
		require.Error(t, err)

		var fe *pyhover.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, pyhover.FetchFatal, fe.Kind)
		assert.Len(t, fe.Attempts, 1)
		assert.Equal(t, 1, *calls)
		assert.Empty(t, delays)
	})

	t.Run("exhausting all attempts reports the last cause", func(t *testing.T) {
		t.Parallel()

		transport, calls := respondWith(http.StatusBadGateway)
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), testConfig(), noSleep(&delays), centeredJitter())

		_, err := f.Fetch(context.Background(), testKey)
		require.Error(t, err)

		var fe *pyhover.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, pyhover.FetchExhausted, fe.Kind)
		assert.Len(t, fe.Attempts, 3)
		assert.Equal(t, 3, *calls)
		assert.EqualError(t, fe.Cause, "HTTP 502")
	})

	t.Run("network errors are retryable", func(t *testing.T) {
		t.Parallel()

		var calls int
		transport := &mock.Transport{
			RequestFn: func(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
				calls++
				if calls < 3 {
					return nil, errors.New("connection reset")
				}
				return &pyhover.TransportResponse{StatusCode: http.StatusOK, Body: []byte("content")}, nil
			},
		}
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), testConfig(), noSleep(&delays), centeredJitter())

		body, err := f.Fetch(context.Background(), testKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("content"), body)
		assert.Equal(t, 3, calls)
	})

	t.Run("429 honors a longer server retry hint", func(t *testing.T) {
		t.Parallel()

		var calls int
		transport := &mock.Transport{
			RequestFn: func(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
				calls++
				if calls == 1 {
					return &pyhover.TransportResponse{
						StatusCode: http.StatusTooManyRequests,
						RetryAfter: 5 * time.Second,
					}, nil
				}
				return &pyhover.TransportResponse{StatusCode: http.StatusOK, Body: []byte("content")}, nil
			},
		}
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), testConfig(), noSleep(&delays), centeredJitter())

		_, err := f.Fetch(context.Background(), testKey)
		require.NoError(t, err)
		require.Len(t, delays, 1)
		assert.Equal(t, 5*time.Second, delays[0])
	})

	t.Run("backoff caps at the configured maximum", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.MaxRetries = 6
		cfg.MaxDelayMs = 4000

		transport, _ := respondWith(http.StatusServiceUnavailable)
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), cfg, noSleep(&delays), centeredJitter())

		_, err := f.Fetch(context.Background(), testKey)
		require.Error(t, err)
		assert.Equal(t, []time.Duration{
			time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second, 4 * time.Second,
		}, delays)
	})

	t.Run("jitter perturbs delays within the configured fraction", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.MaxRetries = 2

		transport, _ := respondWith(http.StatusServiceUnavailable)
		var delays []time.Duration
		f := fetch.NewFetcher(transport, testDict(), cfg,
			noSleep(&delays),
			fetch.WithJitterSource(func() float64 { return 1.0 }),
		)

		_, err := f.Fetch(context.Background(), testKey)
		require.Error(t, err)
		require.Len(t, delays, 1)
		// jitter()=1.0 gives the top of the band: base * (1 + 0.2).
		assert.Equal(t, 1200*time.Millisecond, delays[0])
	})

	t.Run("unknown symbol is fatal without a network call", func(t *testing.T) {
		t.Parallel()

		transport := &mock.Transport{
			RequestFn: func(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
				t.Fatal("transport must not be called")
				return nil, nil
			},
		}
		f := fetch.NewFetcher(transport, testDict(), testConfig())

		key := pyhover.ResolutionKey{Symbol: "nope", Category: pyhover.CategoryBuiltin, VersionTag: "3.12"}
		_, err := f.Fetch(context.Background(), key)

		var fe *pyhover.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, pyhover.FetchFatal, fe.Kind)
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		t.Parallel()

		transport, _ := respondWith(http.StatusServiceUnavailable)
		f := fetch.NewFetcher(transport, testDict(), testConfig(),
			fetch.WithSleep(func(ctx context.Context, d time.Duration) error {
				return context.Canceled
			}),
		)

		_, err := f.Fetch(context.Background(), testKey)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_URL(t *testing.T) {
	t.Parallel()

	f := fetch.NewFetcher(nil, testDict(), testConfig())

	url, ok := f.URL(testKey)
	require.True(t, ok)
	assert.Equal(t, "https://docs.python.org/3.12/library/functions.html#len", url)

	_, ok = f.URL(pyhover.ResolutionKey{Symbol: "nope", Category: pyhover.CategoryBuiltin})
	assert.False(t, ok)
}
