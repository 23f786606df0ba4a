// Package cache provides a generic, thread-safe in-memory cache used to
// memoize expensive read operations such as report queries.
//
// The cache bounds memory by entry count, expires entries by TTL, evicts the
// least recently used entry when full and collapses concurrent fetches for the
// same missing key into a single call.
//
// # Key Features
//
//   - Generic over the value type, keys are plain strings
//   - Per-entry TTL with a configurable default
//   - Lazy expiration on read plus a periodic background sweep
//   - LRU eviction when the configured maximum size is reached
//   - Single-flight GetOrFetch prevents cache stampedes on cold keys
//   - Group invalidation by predicate, regular expression or prefix
//   - Hit, miss, eviction and expiration counters with derived hit rate
//   - Best-effort concurrent warm-up
//
// # Usage
//
// Create a cache and start its sweeper:
//
//	c := cache.New[Report](
//		cache.WithMaxSize(500),
//		cache.WithDefaultTTL(5*time.Minute),
//		cache.WithSweepInterval(30*time.Second),
//	)
//	if err := c.Start(ctx); err != nil {
//		return err
//	}
//	defer c.Stop()
//
// Basic operations:
//
//	c.Set("clinic:42:summary", report)
//	c.Set("clinic:42:ranking", ranking, time.Minute) // explicit TTL
//
//	if r, ok := c.Get("clinic:42:summary"); ok {
//		// use r
//	}
//
//	c.Invalidate("clinic:42:summary")
//	c.InvalidatePattern(cache.MatchPrefix("clinic:42:"))
//	c.Clear()
//
// # Fetch on Miss
//
// GetOrFetch returns the cached value or calls the fetch function once, no
// matter how many goroutines ask for the same key at the same time:
//
//	report, err := c.GetOrFetch(ctx, "clinic:42:summary", func(ctx context.Context) (Report, error) {
//		return repo.ClinicSummary(ctx, 42)
//	})
//
// All concurrent callers receive the same value or the same error. Failed
// fetches are not stored, so the next call retries. Each caller stops waiting
// when its own context is done, while the fetch keeps running for the others.
// WithFetchTimeout bounds the fetch itself and yields ErrFetchTimeout.
// Invalidating a key, or a pattern matching it, while its fetch runs keeps the
// fetched value out of the cache; fetches for other keys are stored as usual.
//
// # Warm-up
//
// WarmUp blocks until every entry is fetched and returns a WarmUpReport so
// callers that need the outcome can wait for it. Start it in a goroutine for
// fire-and-forget population:
//
//	go c.WarmUp(context.WithoutCancel(ctx), entries)
//
// # Expiration
//
// An entry is expired once its age exceeds its TTL. Get never returns an
// expired entry, and the sweeper started by Start removes expired entries that
// are never read again. Stop halts the sweeper and waits for it to exit.
//
// # Eviction
//
// When a new key is stored into a full cache, exactly one entry is evicted:
// the one with the oldest last access. Entries are ordered by the sequence in
// which they were last read or written, so entries sharing the same timestamp
// are evicted in the order they were touched. Overwriting an existing key never
// evicts.
//
// Use SetEvictCallback to observe removals:
//
//	c.SetEvictCallback(func(key string, r Report, reason cache.EvictReason) {
//		log.Debug("cache entry removed", "key", key, "reason", reason)
//	})
//
// # Statistics
//
//	s := c.Stats()
//	fmt.Printf("hit rate %.2f, size %d/%d\n", s.HitRate, s.Size, s.MaxSize)
//
// Clear resets all counters; Invalidate and InvalidatePattern leave them as is.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Every mutation, including lazy
// expiration and the sweep, is serialized by a single mutex around the entry
// store. Evict callbacks run after the mutex is released; a panicking
// callback is recovered and logged.
package cache
