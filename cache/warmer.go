package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KiidxAtlas/pyhover"
	"golang.org/x/sync/errgroup"
)

// DefaultWarmConcurrency bounds parallel warm fetches.
const DefaultWarmConcurrency = 4

// Warmer pre-populates the cache for a set of high-frequency keys. It is
// best-effort: one failed key never aborts the batch. Warm fetches go
// through the same get-or-fetch path as lookups, so they coalesce with any
// in-flight fetch instead of duplicating it.
type Warmer struct {
	cache       pyhover.Cache
	fetchFn     pyhover.FetchFunc
	logger      *slog.Logger
	concurrency int
}

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer)

// WithWarmConcurrency bounds how many keys warm in parallel.
func WithWarmConcurrency(n int) WarmerOption {
	return func(w *Warmer) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithWarmLogger sets the diagnostic logger.
func WithWarmLogger(l *slog.Logger) WarmerOption {
	return func(w *Warmer) { w.logger = l }
}

// NewWarmer creates a Warmer that populates cache through fetchFn.
func NewWarmer(cache pyhover.Cache, fetchFn pyhover.FetchFunc, opts ...WarmerOption) *Warmer {
	w := &Warmer{
		cache:       cache,
		fetchFn:     fetchFn,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: DefaultWarmConcurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Warm populates the cache for each key and returns how many succeeded.
// Individual failures are logged and skipped.
func (w *Warmer) Warm(ctx context.Context, keys []pyhover.ResolutionKey) int {
	var warmed atomic.Int64

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, key := range keys {
		g.Go(func() error {
			if _, err := w.cache.GetOrFetch(ctx, key, w.fetchFn); err != nil {
				w.logger.Debug("warm skipped", "key", key.String(), "err", err)
				return nil
			}
			warmed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(warmed.Load())
}

// Run warms once immediately and then on every tick of interval until ctx
// is cancelled.
func (w *Warmer) Run(ctx context.Context, keys []pyhover.ResolutionKey, interval time.Duration) {
	w.Warm(ctx, keys)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.Warm(ctx, keys)
		}
	}
}
