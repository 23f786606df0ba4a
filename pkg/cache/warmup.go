package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// WarmUpEntry describes one key to preload.
type WarmUpEntry[V any] struct {
	Key   string
	Fetch FetchFunc[V]
	TTL   time.Duration // zero uses the default TTL
}

// WarmUpReport summarizes a warm-up run.
type WarmUpReport struct {
	Loaded int `json:"loaded"`
	Failed int `json:"failed"`
}

// WarmUp fetches and stores entries concurrently. Failures are logged and
// counted but never stop the remaining entries. Keys that already hold a live
// value are not fetched again, and hit/miss counters are not affected.
// Run it in a goroutine for fire-and-forget behavior.
func (c *Cache[V]) WarmUp(ctx context.Context, entries []WarmUpEntry[V]) WarmUpReport {
	var loaded, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(c.opts.warmUpConcurrency)

	for _, e := range entries {
		g.Go(func() error {
			if _, err := c.fetch(ctx, e.Key, e.Fetch, c.resolveTTL([]time.Duration{e.TTL})); err != nil {
				failed.Add(1)
				c.opts.logger.WarnContext(ctx, "cache warm-up entry failed",
					logger.Component("cache"),
					logger.CacheKey(e.Key),
					logger.Error(err),
				)
				return nil
			}
			loaded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := WarmUpReport{Loaded: int(loaded.Load()), Failed: int(failed.Load())}
	c.opts.logger.InfoContext(ctx, "cache warm-up finished",
		logger.Component("cache"),
		slog.Int("loaded", report.Loaded),
		slog.Int("failed", report.Failed),
	)
	return report
}
