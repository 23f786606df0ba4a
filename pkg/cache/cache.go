package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// Cache is a thread-safe, size-bounded, TTL-aware in-memory cache with
// least-recently-used eviction and deduplicated fetch-on-miss.
type Cache[V any] struct {
	opts *options

	mu         sync.Mutex
	items      map[string]*entry[V]
	recency    *list.List // front is most recently used
	stats      counters
	flights    map[string]*flight // running fetches by key
	onEvict    func(key string, value V, reason EvictReason)

	group    singleflight.Group
	inFlight atomic.Int64

	lifecycle sync.Mutex
	stop      context.CancelFunc
	done      chan struct{}
}

// New creates a cache. The background sweeper is not running until Start is called.
func New[V any](opts ...Option) *Cache[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Cache[V]{
		opts:    o,
		items:   make(map[string]*entry[V], o.maxSize),
		recency: list.New(),
		flights: make(map[string]*flight),
	}
}

// SetEvictCallback sets a function called whenever an entry leaves the cache.
// It runs after the cache lock is released, so it may call back into the cache.
// A panic in the callback is recovered and logged.
func (c *Cache[V]) SetEvictCallback(fn func(key string, value V, reason EvictReason)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value stored under key. An expired entry is removed and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.stats.misses++
		c.mu.Unlock()
		return zero, false
	}

	now := c.opts.now()
	if e.expired(now) {
		c.removeLocked(e)
		c.stats.misses++
		c.stats.expirations++
		cb := c.onEvict
		c.mu.Unlock()
		c.notify(cb, removed[V]{key: e.key, value: e.value, reason: ReasonExpired})
		return zero, false
	}

	e.touch(now)
	c.recency.MoveToFront(e.elem)
	c.stats.hits++
	v := e.value
	c.mu.Unlock()

	return v, true
}

// Set stores value under key. The optional ttl overrides the default TTL;
// a non-positive ttl falls back to the default.
// When key is new and the cache is full, the least recently used entry is evicted first.
func (c *Cache[V]) Set(key string, value V, ttl ...time.Duration) {
	d := c.resolveTTL(ttl)

	c.mu.Lock()
	victim := c.setLocked(key, value, d)
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, victim...)
}

// Invalidate removes key. Missing keys are ignored. Counters are left untouched.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	if f, ok := c.flights[key]; ok {
		f.voided = true
	}
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	c.removeLocked(e)
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, removed[V]{key: e.key, value: e.value, reason: ReasonInvalidated})
}

// InvalidatePattern removes every key accepted by match in a single pass and
// returns how many entries were removed.
func (c *Cache[V]) InvalidatePattern(match Matcher) int {
	if match == nil {
		return 0
	}

	c.mu.Lock()
	for key, f := range c.flights {
		if match(key) {
			f.voided = true
		}
	}
	var gone []removed[V]
	for key, e := range c.items {
		if !match(key) {
			continue
		}
		c.removeLocked(e)
		gone = append(gone, removed[V]{key: e.key, value: e.value, reason: ReasonInvalidated})
	}
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, gone...)
	return len(gone)
}

// Clear removes every entry and resets all counters.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	for _, f := range c.flights {
		f.voided = true
	}
	var gone []removed[V]
	if c.onEvict != nil {
		gone = make([]removed[V], 0, len(c.items))
		for _, e := range c.items {
			gone = append(gone, removed[V]{key: e.key, value: e.value, reason: ReasonCleared})
		}
	}
	c.items = make(map[string]*entry[V], c.opts.maxSize)
	c.recency.Init()
	c.stats = counters{}
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, gone...)
}

// Len returns the number of stored entries, including expired ones the
// sweeper has not reclaimed yet.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Inspect returns the metadata of key without counting a hit or a miss and
// without changing its recency.
func (c *Cache[V]) Inspect(key string) (EntryInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return EntryInfo{}, false
	}
	return e.info(), true
}

// Keys returns stored keys ordered from most to least recently used.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.recency.Len())
	for el := c.recency.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}

// Must be called with lock held.
func (c *Cache[V]) setLocked(key string, value V, ttl time.Duration) []removed[V] {
	now := c.opts.now()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.createdAt = now
		e.ttl = ttl
		e.accessCount = 0
		e.lastAccessedAt = now
		c.recency.MoveToFront(e.elem)
		return nil
	}

	var victims []removed[V]
	if len(c.items) >= c.opts.maxSize {
		if victim := c.oldestLocked(); victim != nil {
			c.removeLocked(victim)
			c.stats.evictions++
			victims = append(victims, removed[V]{key: victim.key, value: victim.value, reason: ReasonCapacity})
		}
	}

	e := &entry[V]{
		key:            key,
		value:          value,
		createdAt:      now,
		ttl:            ttl,
		lastAccessedAt: now,
	}
	e.elem = c.recency.PushFront(e)
	c.items[key] = e

	return victims
}

// oldestLocked returns the least recently used entry. Entries are kept in
// touch order, so among equal lastAccessedAt values the one touched first loses.
// Must be called with lock held.
func (c *Cache[V]) oldestLocked() *entry[V] {
	el := c.recency.Back()
	if el == nil {
		return nil
	}
	return el.Value.(*entry[V])
}

// Must be called with lock held.
func (c *Cache[V]) removeLocked(e *entry[V]) {
	c.recency.Remove(e.elem)
	delete(c.items, e.key)
}

func (c *Cache[V]) resolveTTL(ttl []time.Duration) time.Duration {
	if len(ttl) > 0 && ttl[0] > 0 {
		return ttl[0]
	}
	return c.opts.defaultTTL
}

func (c *Cache[V]) notify(cb func(string, V, EvictReason), gone ...removed[V]) {
	if cb == nil {
		return
	}
	for _, r := range gone {
		c.callEvict(cb, r)
	}
}

func (c *Cache[V]) callEvict(cb func(string, V, EvictReason), r removed[V]) {
	defer func() {
		if p := recover(); p != nil {
			c.opts.logger.Error("cache evict callback panicked",
				logger.Component("cache"),
				logger.CacheKey(r.key),
				slog.Any("panic", p),
			)
		}
	}()
	cb(r.key, r.value, r.reason)
}
