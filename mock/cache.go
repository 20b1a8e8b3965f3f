package mock

import (
	"context"

	"github.com/KiidxAtlas/pyhover"
)

var _ pyhover.Cache = (*Cache)(nil)

// Cache is a mock implementation of pyhover.Cache.
type Cache struct {
	GetOrFetchFn    func(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error)
	InvalidateFn    func(ctx context.Context, key pyhover.ResolutionKey) error
	InvalidateAllFn func(ctx context.Context, versionTag string) error
	SweepFn         func(ctx context.Context) (int, error)
	StatsFn         func() pyhover.CacheStats
}

func (c *Cache) GetOrFetch(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
	return c.GetOrFetchFn(ctx, key, fetchFn)
}

func (c *Cache) Invalidate(ctx context.Context, key pyhover.ResolutionKey) error {
	return c.InvalidateFn(ctx, key)
}

func (c *Cache) InvalidateAll(ctx context.Context, versionTag string) error {
	return c.InvalidateAllFn(ctx, versionTag)
}

func (c *Cache) Sweep(ctx context.Context) (int, error) {
	return c.SweepFn(ctx)
}

func (c *Cache) Stats() pyhover.CacheStats {
	return c.StatsFn()
}
