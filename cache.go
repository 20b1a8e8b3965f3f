package pyhover

import (
	"context"
	"time"
)

// FetchFunc populates a cache miss. It is invoked at most once per key per
// miss episode regardless of how many callers are waiting.
type FetchFunc func(ctx context.Context, key ResolutionKey) ([]byte, error)

// CacheStats is a point-in-time snapshot of cache behavior.
type CacheStats struct {
	EntryCount    int   `json:"entryCount"`
	HitCount      int64 `json:"hitCount"`
	MissCount     int64 `json:"missCount"`
	EvictionCount int64 `json:"evictionCount"`
	BytesUsed     int64 `json:"bytesUsed"`
}

// Cache is a two-tier (memory + persisted) store keyed by resolution key.
//
// GetOrFetch returns a memory-tier hit immediately; on memory miss it checks
// the persisted tier and promotes on hit; on full miss it coalesces with any
// in-flight fetch for the same key, otherwise invokes fetchFn and stores the
// result in both tiers. Expired entries are treated as absent. Persisted-tier
// I/O failures degrade the store to memory-only operation and never fail a
// lookup that has a usable value.
type Cache interface {
	GetOrFetch(ctx context.Context, key ResolutionKey, fetchFn FetchFunc) (*CacheEntry, error)

	// Invalidate removes a single key from both tiers.
	Invalidate(ctx context.Context, key ResolutionKey) error

	// InvalidateAll removes every entry whose key carries versionTag,
	// leaving other versions untouched. An empty tag removes everything.
	InvalidateAll(ctx context.Context, versionTag string) error

	// Sweep removes expired entries from both tiers and returns how many
	// were dropped.
	Sweep(ctx context.Context) (int, error)

	Stats() CacheStats
}

// Storage is the persisted-tier adapter: a durable key-value byte store with
// atomic per-key reads and writes. Two processes populating the same key must
// never interleave a partial write. Get returns (nil, false, nil) for an
// absent key.
type Storage interface {
	Get(ctx context.Context, key []byte) (value []byte, ok bool, err error)
	Put(ctx context.Context, key []byte, value []byte, versionTag string, expiresAt time.Time) error
	Delete(ctx context.Context, key []byte) error

	// DeleteVersion removes every record stored under versionTag; an empty
	// tag removes all records.
	DeleteVersion(ctx context.Context, versionTag string) error

	// SweepExpired removes records whose expiry has passed and reports how
	// many were removed.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// Clock abstracts wall-clock time so expiration is testable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return ClockFunc(time.Now) }
