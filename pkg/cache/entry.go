package cache

import (
	"container/list"
	"time"
)

// entry is a single stored value together with its bookkeeping.
// All fields are guarded by Cache.mu.
type entry[V any] struct {
	key            string
	value          V
	createdAt      time.Time
	ttl            time.Duration
	accessCount    uint64
	lastAccessedAt time.Time
	elem           *list.Element // position in the recency list
}

// expired reports whether the entry outlived its TTL at the given time.
func (e *entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// touch records a hit.
func (e *entry[V]) touch(now time.Time) {
	e.accessCount++
	e.lastAccessedAt = now
}

// EntryInfo is a read-only view of an entry's metadata.
type EntryInfo struct {
	Key            string        `json:"key"`
	CreatedAt      time.Time     `json:"created_at"`
	TTL            time.Duration `json:"ttl"`
	AccessCount    uint64        `json:"access_count"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
}

func (e *entry[V]) info() EntryInfo {
	return EntryInfo{
		Key:            e.key,
		CreatedAt:      e.createdAt,
		TTL:            e.ttl,
		AccessCount:    e.accessCount,
		LastAccessedAt: e.lastAccessedAt,
	}
}

// EvictReason tells an evict callback why an entry left the cache.
type EvictReason string

const (
	ReasonCapacity    EvictReason = "capacity"
	ReasonExpired     EvictReason = "expired"
	ReasonInvalidated EvictReason = "invalidated"
	ReasonCleared     EvictReason = "cleared"
)

// removed is collected under the lock and handed to the evict callback after unlock.
type removed[V any] struct {
	key    string
	value  V
	reason EvictReason
}
