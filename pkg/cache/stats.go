package cache

// counters are guarded by Cache.mu.
type counters struct {
	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	Evictions   uint64  `json:"evictions"`
	Expirations uint64  `json:"expirations"`
	Size        int     `json:"size"`
	MaxSize     int     `json:"max_size"`
	InFlight    int64   `json:"in_flight"`
	HitRate     float64 `json:"hit_rate"`
}

// Stats returns the current counters, size and derived hit rate.
// HitRate is hits / (hits + misses), or 0 before any lookup.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	s := Stats{
		Hits:        c.stats.hits,
		Misses:      c.stats.misses,
		Evictions:   c.stats.evictions,
		Expirations: c.stats.expirations,
		Size:        len(c.items),
		MaxSize:     c.opts.maxSize,
	}
	c.mu.Unlock()

	s.InFlight = c.inFlight.Load()
	s.HitRate = hitRate(s.Hits, s.Misses)
	return s
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
