// Package cache implements the two-tier documentation cache: a volatile
// memory tier with strict LRU eviction in front of a durable persisted tier,
// with lazy TTL expiration, in-flight fetch coalescing, and short-lived
// negative caching of fatal fetch outcomes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KiidxAtlas/pyhover"
	"golang.org/x/sync/singleflight"
)

// Ensure Store implements pyhover.Cache at compile time.
var _ pyhover.Cache = (*Store)(nil)

// negativeResult remembers a fatal fetch outcome for a short window so a
// known-dead key is not re-fetched on every lookup.
type negativeResult struct {
	err   error
	until time.Time
}

// Store is a two-tier cache keyed by resolution key.
//
// All memory-tier and registry mutations happen under a single store-scoped
// lock that is never held across a network call; concurrent fetches for the
// same key serialize through the in-flight group instead.
type Store struct {
	storage pyhover.Storage // nil = memory-only operation
	clock   pyhover.Clock
	logger  *slog.Logger

	ttl         time.Duration
	negativeTTL time.Duration
	maxEntries  int
	maxBytes    int64

	group singleflight.Group

	mu       sync.Mutex
	mem      *memTier
	negative map[pyhover.ResolutionKey]negativeResult
	degraded bool

	hits      int64
	misses    int64
	evictions int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock, for tests.
func WithClock(c pyhover.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the diagnostic logger. Storage degradation is logged here
// and never surfaced to lookups.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store over the given persisted tier. A nil storage
// yields a memory-only store.
func NewStore(storage pyhover.Storage, cfg pyhover.Config, opts ...Option) *Store {
	s := &Store{
		storage:     storage,
		clock:       pyhover.SystemClock(),
		logger:      slog.New(slog.DiscardHandler),
		ttl:         cfg.CacheTTL(),
		negativeTTL: cfg.NegativeTTL(),
		maxEntries:  cfg.MaxCacheEntries,
		maxBytes:    cfg.MaxCacheBytes,
		mem:         newMemTier(),
		negative:    make(map[pyhover.ResolutionKey]negativeResult),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns cached content for key, populating both tiers through
// fetchFn on a full miss. Concurrent callers for the same key share a single
// fetch; each caller's own context still controls how long it waits.
func (s *Store) GetOrFetch(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.Now()

	s.mu.Lock()
	if entry, ok := s.mem.get(key); ok {
		if !entry.Expired(now) {
			s.hits++
			s.mu.Unlock()
			return entry.Clone(), nil
		}
		s.mem.remove(key)
	}
	if neg, ok := s.negative[key]; ok {
		if now.Before(neg.until) {
			s.misses++
			s.mu.Unlock()
			return nil, neg.err
		}
		delete(s.negative, key)
	}
	s.misses++
	s.mu.Unlock()

	// The fill runs on a context detached from any single caller: one
	// waiter cancelling must not cancel the shared fetch, and a fetch
	// abandoned by every waiter still populates the cache.
	fillCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(string(key.StorageKey()), func() (any, error) {
		return s.fill(fillCtx, key, fetchFn)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pyhover.CacheEntry).Clone(), nil
	}
}

// fill handles a full miss: re-check memory, then the persisted tier, then
// the fetch function. Runs at most once per key per miss episode.
func (s *Store) fill(ctx context.Context, key pyhover.ResolutionKey, fetchFn pyhover.FetchFunc) (*pyhover.CacheEntry, error) {
	now := s.clock.Now()

	// A concurrent fill may have completed between the caller's miss and
	// this call winning the in-flight slot.
	s.mu.Lock()
	if entry, ok := s.mem.peek(key); ok && !entry.Expired(now) {
		s.mu.Unlock()
		return entry, nil
	}
	s.mu.Unlock()

	if entry, ok := s.fromStorage(ctx, key, now); ok {
		s.insert(entry)
		return entry, nil
	}

	payload, err := fetchFn(ctx, key)
	if err != nil {
		s.recordNegative(key, err)
		return nil, err
	}

	entry := pyhover.NewCacheEntry(key, payload, s.clock.Now(), s.ttl)
	s.insert(entry)
	s.persist(ctx, entry)
	return entry, nil
}

// fromStorage reads the persisted tier. I/O failures degrade the store to
// memory-only operation for this lookup: logged, never surfaced.
func (s *Store) fromStorage(ctx context.Context, key pyhover.ResolutionKey, now time.Time) (*pyhover.CacheEntry, bool) {
	if s.storage == nil {
		return nil, false
	}
	raw, ok, err := s.storage.Get(ctx, key.StorageKey())
	if err != nil {
		s.noteDegraded("read", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry pyhover.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		s.noteDegraded("decode", key, err)
		return nil, false
	}
	if entry.Key != key || entry.Validate() != nil || entry.Expired(now) {
		return nil, false
	}
	return &entry, true
}

// persist writes an entry to the persisted tier, best effort.
func (s *Store) persist(ctx context.Context, entry *pyhover.CacheEntry) {
	if s.storage == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		s.noteDegraded("encode", entry.Key, err)
		return
	}
	if err := s.storage.Put(ctx, entry.Key.StorageKey(), raw, entry.Key.VersionTag, entry.ExpiresAt); err != nil {
		s.noteDegraded("write", entry.Key, err)
	}
}

// insert adds an entry to the memory tier and evicts least-recently-used
// entries until both the entry-count and byte budgets hold.
func (s *Store) insert(entry *pyhover.CacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.negative, entry.Key)
	s.mem.put(entry)
	for s.mem.len() > s.maxEntries || s.mem.bytes > s.maxBytes {
		if _, ok := s.mem.evictOldest(); !ok {
			break
		}
		s.evictions++
	}
}

// recordNegative remembers a fatal fetch outcome for the negative TTL.
// Transient failures (exhausted retries, cancellation) are not remembered.
func (s *Store) recordNegative(key pyhover.ResolutionKey, err error) {
	if s.negativeTTL <= 0 {
		return
	}
	var fe *pyhover.FetchError
	if !errors.As(err, &fe) || fe.Kind != pyhover.FetchFatal {
		return
	}
	s.mu.Lock()
	s.negative[key] = negativeResult{err: err, until: s.clock.Now().Add(s.negativeTTL)}
	s.mu.Unlock()
}

func (s *Store) noteDegraded(op string, key pyhover.ResolutionKey, err error) {
	s.mu.Lock()
	first := !s.degraded
	s.degraded = true
	s.mu.Unlock()

	if first {
		s.logger.Warn("persisted cache tier degraded, continuing memory-only",
			"op", op, "key", key.String(), "err", err)
	} else {
		s.logger.Debug("persisted cache tier error",
			"op", op, "key", key.String(), "err", err)
	}
}

// Invalidate removes key from both tiers.
func (s *Store) Invalidate(ctx context.Context, key pyhover.ResolutionKey) error {
	s.mu.Lock()
	s.mem.remove(key)
	delete(s.negative, key)
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, key.StorageKey()); err != nil {
		return pyhover.WrapErrorf(err, pyhover.EINTERNAL, "invalidate %s", key)
	}
	return nil
}

// InvalidateAll removes every entry whose key carries versionTag; an empty
// tag clears the cache entirely.
func (s *Store) InvalidateAll(ctx context.Context, versionTag string) error {
	s.mu.Lock()
	var victims []pyhover.ResolutionKey
	s.mem.each(func(entry *pyhover.CacheEntry) {
		if versionTag == "" || entry.Key.VersionTag == versionTag {
			victims = append(victims, entry.Key)
		}
	})
	for _, key := range victims {
		s.mem.remove(key)
	}
	for key := range s.negative {
		if versionTag == "" || key.VersionTag == versionTag {
			delete(s.negative, key)
		}
	}
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	if err := s.storage.DeleteVersion(ctx, versionTag); err != nil {
		return pyhover.WrapErrorf(err, pyhover.EINTERNAL, "invalidate version %q", versionTag)
	}
	return nil
}

// Sweep removes expired entries from both tiers to bound growth between
// lazy-expiration reads.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()

	s.mu.Lock()
	var victims []pyhover.ResolutionKey
	s.mem.each(func(entry *pyhover.CacheEntry) {
		if entry.Expired(now) {
			victims = append(victims, entry.Key)
		}
	})
	for _, key := range victims {
		s.mem.remove(key)
	}
	for key, neg := range s.negative {
		if !now.Before(neg.until) {
			delete(s.negative, key)
		}
	}
	removed := len(victims)
	s.mu.Unlock()

	if s.storage != nil {
		n, err := s.storage.SweepExpired(ctx, now)
		if err != nil {
			return removed, pyhover.WrapErrorf(err, pyhover.EINTERNAL, "sweep persisted tier")
		}
		removed += n
	}
	return removed, nil
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
// Intended for long-lived hosts; one-shot hosts call Sweep directly.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if _, err := s.Sweep(ctx); err != nil {
					s.logger.Warn("background sweep failed", "err", err)
				}
			}
		}
	}()
}

// Stats returns a point-in-time snapshot.
func (s *Store) Stats() pyhover.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pyhover.CacheStats{
		EntryCount:    s.mem.len(),
		HitCount:      s.hits,
		MissCount:     s.misses,
		EvictionCount: s.evictions,
		BytesUsed:     s.mem.bytes,
	}
}
