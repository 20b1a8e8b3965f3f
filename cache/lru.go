package cache

import (
	"container/list"

	"github.com/KiidxAtlas/pyhover"
)

// memTier is the in-memory cache tier: a map for O(1) lookup plus a
// doubly-linked list ordered by recency of use (front = most recent).
// Callers must hold the store lock.
type memTier struct {
	ll    *list.List
	items map[pyhover.ResolutionKey]*list.Element
	bytes int64
}

func newMemTier() *memTier {
	return &memTier{
		ll:    list.New(),
		items: make(map[pyhover.ResolutionKey]*list.Element),
	}
}

// get returns the entry for key and marks it most recently used.
func (m *memTier) get(key pyhover.ResolutionKey) (*pyhover.CacheEntry, bool) {
	el, ok := m.items[key]
	if !ok {
		return nil, false
	}
	m.ll.MoveToFront(el)
	return el.Value.(*pyhover.CacheEntry), true
}

// peek returns the entry without touching recency.
func (m *memTier) peek(key pyhover.ResolutionKey) (*pyhover.CacheEntry, bool) {
	el, ok := m.items[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*pyhover.CacheEntry), true
}

// put inserts or replaces the entry for its key as most recently used.
func (m *memTier) put(entry *pyhover.CacheEntry) {
	if el, ok := m.items[entry.Key]; ok {
		m.bytes -= int64(el.Value.(*pyhover.CacheEntry).SizeBytes)
		el.Value = entry
		m.ll.MoveToFront(el)
	} else {
		m.items[entry.Key] = m.ll.PushFront(entry)
	}
	m.bytes += int64(entry.SizeBytes)
}

// remove deletes the entry for key, if present.
func (m *memTier) remove(key pyhover.ResolutionKey) bool {
	el, ok := m.items[key]
	if !ok {
		return false
	}
	m.drop(el)
	return true
}

// evictOldest removes and returns the least recently used entry.
func (m *memTier) evictOldest() (*pyhover.CacheEntry, bool) {
	el := m.ll.Back()
	if el == nil {
		return nil, false
	}
	entry := el.Value.(*pyhover.CacheEntry)
	m.drop(el)
	return entry, true
}

func (m *memTier) drop(el *list.Element) {
	entry := el.Value.(*pyhover.CacheEntry)
	m.ll.Remove(el)
	delete(m.items, entry.Key)
	m.bytes -= int64(entry.SizeBytes)
}

func (m *memTier) len() int {
	return m.ll.Len()
}

// each calls fn for every entry. fn must not mutate the tier.
func (m *memTier) each(fn func(*pyhover.CacheEntry)) {
	for el := m.ll.Front(); el != nil; el = el.Next() {
		fn(el.Value.(*pyhover.CacheEntry))
	}
}
