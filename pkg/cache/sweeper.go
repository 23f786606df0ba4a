package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// Start runs the expiration sweeper until ctx is done or Stop is called.
// It returns ErrAlreadyStarted if the sweeper is already running.
func (c *Cache[V]) Start(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.done != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.stop = cancel
	c.done = done

	go c.sweepLoop(ctx, done)

	c.opts.logger.Debug("cache sweeper started",
		logger.Component("cache"),
		slog.Duration("interval", c.opts.sweepInterval),
	)
	return nil
}

// Stop stops the sweeper and waits for it to exit. It is safe to call
// repeatedly and on a cache that was never started. A stopped cache can be
// started again.
func (c *Cache[V]) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.done == nil {
		return
	}
	c.stop()
	<-c.done
	c.stop = nil
	c.done = nil

	c.opts.logger.Debug("cache sweeper stopped", logger.Component("cache"))
}

func (c *Cache[V]) sweepLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.opts.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.DeleteExpired(); n > 0 {
				c.opts.logger.Debug("cache sweep removed expired entries",
					logger.Component("cache"),
					slog.Int("removed", n),
				)
			}
		}
	}
}

// DeleteExpired removes every expired entry in one locked scan and returns
// how many were removed. The sweeper calls it on every tick.
func (c *Cache[V]) DeleteExpired() int {
	c.mu.Lock()
	now := c.opts.now()
	var gone []removed[V]
	for _, e := range c.items {
		if !e.expired(now) {
			continue
		}
		c.removeLocked(e)
		gone = append(gone, removed[V]{key: e.key, value: e.value, reason: ReasonExpired})
	}
	c.stats.expirations += uint64(len(gone))
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, gone...)
	return len(gone)
}
