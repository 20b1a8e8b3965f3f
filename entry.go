package pyhover

import "time"

// CacheEntry represents cached documentation content for a resolution key.
// Entries are owned by the cache store; callers always receive copies, never
// a reference into the store's internal state.
type CacheEntry struct {
	Key       ResolutionKey `json:"key"`
	Payload   []byte        `json:"payload"`
	FetchedAt time.Time     `json:"fetchedAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
	SizeBytes int           `json:"sizeBytes"`
}

// NewCacheEntry constructs an entry fetched at the given instant with the
// given time to live.
func NewCacheEntry(key ResolutionKey, payload []byte, fetchedAt time.Time, ttl time.Duration) *CacheEntry {
	return &CacheEntry{
		Key:       key,
		Payload:   payload,
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
		SizeBytes: len(payload),
	}
}

// Validate returns an error if the entry violates its invariants.
func (e *CacheEntry) Validate() error {
	if err := e.Key.Validate(); err != nil {
		return err
	}
	if !e.ExpiresAt.After(e.FetchedAt) {
		return Errorf(EINVALID, "entry expiry must follow fetch time")
	}
	if e.SizeBytes != len(e.Payload) {
		return Errorf(EINVALID, "entry size %d does not match payload length %d", e.SizeBytes, len(e.Payload))
	}
	return nil
}

// Expired reports whether the entry's TTL has passed at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// TTL returns the remaining time to live at the given instant, or zero if
// already expired.
func (e *CacheEntry) TTL(now time.Time) time.Duration {
	ttl := e.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Clone returns a deep copy safe to hand to callers.
func (e *CacheEntry) Clone() *CacheEntry {
	dup := *e
	dup.Payload = make([]byte, len(e.Payload))
	copy(dup.Payload, e.Payload)
	return &dup
}
