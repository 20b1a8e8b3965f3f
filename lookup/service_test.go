package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/bloom"
	"github.com/KiidxAtlas/pyhover/lookup"
	"github.com/KiidxAtlas/pyhover/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lenKey = pyhover.ResolutionKey{Symbol: "len", Category: pyhover.CategoryBuiltin, VersionTag: "3.12"}

func resolveTo(key pyhover.ResolutionKey, warning string) *mock.Resolver {
	return &mock.Resolver{
		ResolveFn: func(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
			return &pyhover.Resolution{Key: key, ContextWarning: warning}, nil
		},
	}
}

// passthroughCache calls the miss handler on every lookup.
func passthroughCache() *mock.Cache {
	return &mock.Cache{
		GetOrFetchFn: func(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
			payload, err := fetchFn(ctx, key)
			if err != nil {
				return nil, err
			}
			return &pyhover.CacheEntry{Key: key, Payload: payload, SizeBytes: len(payload)}, nil
		},
	}
}

func untouchableCache(t *testing.T) *mock.Cache {
	t.Helper()
	return &mock.Cache{
		GetOrFetchFn: func(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
			t.Error("cache must not be consulted")
			return nil, errors.New("unreachable")
		},
	}
}

func staticFetcher(payload string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
			return []byte(payload), nil
		},
	}
}

func TestService_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns cached content for a resolvable token", func(t *testing.T) {
		t.Parallel()

		svc := lookup.NewService(resolveTo(lenKey, ""), passthroughCache(), staticFetcher("docs"))

		res, err := svc.Lookup(context.Background(), "n = len(x)", 4, "len")
		require.NoError(t, err)
		assert.Equal(t, lenKey, res.Key)
		assert.Equal(t, []byte("docs"), res.Content)
		assert.Empty(t, res.ContextWarning)
	})

	t.Run("passes resolver warnings through", func(t *testing.T) {
		t.Parallel()

		key := pyhover.ResolutionKey{Symbol: "await", Category: pyhover.CategoryKeyword, VersionTag: "3.12"}
		svc := lookup.NewService(resolveTo(key, "await outside async"), passthroughCache(), staticFetcher("docs"))

		res, err := svc.Lookup(context.Background(), "await x", 0, "await")
		require.NoError(t, err)
		assert.Equal(t, "await outside async", res.ContextWarning)
	})

	t.Run("unresolvable tokens never touch the cache", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
				return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "cannot resolve %q", token)
			},
		}
		svc := lookup.NewService(resolver, untouchableCache(t), staticFetcher("docs"))

		_, err := svc.Lookup(context.Background(), "widget = 1", 0, "widget")
		assert.Equal(t, pyhover.EUNRESOLVABLE, pyhover.ErrorCode(err))
	})

	t.Run("fetch failures surface as unavailable", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
				return nil, &pyhover.FetchError{Kind: pyhover.FetchExhausted, Key: key, Cause: errors.New("HTTP 503")}
			},
		}
		svc := lookup.NewService(resolveTo(lenKey, ""), passthroughCache(), fetcher)

		_, err := svc.Lookup(context.Background(), "n = len(x)", 4, "len")
		assert.Equal(t, pyhover.EUNAVAILABLE, pyhover.ErrorCode(err))
	})

	t.Run("caller cancellation is not rewrapped", func(t *testing.T) {
		t.Parallel()

		cache := &mock.Cache{
			GetOrFetchFn: func(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
				return nil, context.Canceled
			},
		}
		svc := lookup.NewService(resolveTo(lenKey, ""), cache, staticFetcher("docs"))

		_, err := svc.Lookup(context.Background(), "n = len(x)", 4, "len")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("symbol filter rejects before resolving", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
				t.Error("resolver must not run for filtered tokens")
				return nil, errors.New("unreachable")
			},
		}
		filter := bloom.NewSymbolFilter([]string{"len", "print"}, 0.01)
		svc := lookup.NewService(resolver, untouchableCache(t), staticFetcher("docs"),
			lookup.WithSymbolFilter(filter))

		_, err := svc.Lookup(context.Background(), "zzgrobble()", 0, "zzgrobble")
		assert.Equal(t, pyhover.EUNRESOLVABLE, pyhover.ErrorCode(err))
	})
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("invalidates before fetching", func(t *testing.T) {
		t.Parallel()

		var invalidated bool
		cache := &mock.Cache{
			InvalidateFn: func(ctx context.Context, key pyhover.ResolutionKey) error {
				invalidated = true
				assert.Equal(t, lenKey, key)
				return nil
			},
			GetOrFetchFn: func(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
				require.True(t, invalidated, "invalidate must happen before the fetch")
				payload, err := fetchFn(ctx, key)
				if err != nil {
					return nil, err
				}
				return &pyhover.CacheEntry{Key: key, Payload: payload, SizeBytes: len(payload)}, nil
			},
		}
		svc := lookup.NewService(resolveTo(lenKey, ""), cache, staticFetcher("fresh"))

		res, err := svc.Refresh(context.Background(), "n = len(x)", 4, "len")
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), res.Content)
		assert.True(t, invalidated)
	})

	t.Run("unresolvable tokens fail without invalidating", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.Resolver{
			ResolveFn: func(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
				return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "cannot resolve %q", token)
			},
		}
		cache := &mock.Cache{
			InvalidateFn: func(ctx context.Context, key pyhover.ResolutionKey) error {
				t.Error("invalidate must not run")
				return nil
			},
		}
		svc := lookup.NewService(resolver, cache, staticFetcher("docs"))

		_, err := svc.Refresh(context.Background(), "widget = 1", 0, "widget")
		assert.Equal(t, pyhover.EUNRESOLVABLE, pyhover.ErrorCode(err))
	})
}
