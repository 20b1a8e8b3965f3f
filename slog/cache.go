// Package slog provides logging decorators for pyhover domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/KiidxAtlas/pyhover"
)

// Ensure LoggingCache implements pyhover.Cache.
var _ pyhover.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with operation logging.
type LoggingCache struct {
	next   pyhover.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next pyhover.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// GetOrFetch delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) GetOrFetch(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (entry *pyhover.CacheEntry, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get-or-fetch",
			"key", key.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.GetOrFetch(ctx, key, fetchFn)
}

// Invalidate delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) Invalidate(ctx context.Context, key pyhover.ResolutionKey) error {
	err := c.next.Invalidate(ctx, key)
	c.logger.Info("cache invalidate", "key", key.String(), "err", err)
	return err
}

// InvalidateAll delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) InvalidateAll(ctx context.Context, versionTag string) error {
	err := c.next.InvalidateAll(ctx, versionTag)
	c.logger.Info("cache invalidate-all", "versionTag", versionTag, "err", err)
	return err
}

// Sweep delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) Sweep(ctx context.Context) (int, error) {
	removed, err := c.next.Sweep(ctx)
	c.logger.Debug("cache sweep", "removed", removed, "err", err)
	return removed, err
}

// Stats delegates to the wrapped cache.
func (c *LoggingCache) Stats() pyhover.CacheStats {
	return c.next.Stats()
}
