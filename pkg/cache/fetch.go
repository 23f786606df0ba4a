package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// FetchFunc loads a value on a cache miss. It is typically a database query
// or a remote call; its errors are returned to callers unchanged.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// GetOrFetch returns the cached value for key or, on a miss, calls fetch and
// stores its result. Concurrent callers for the same key share one fetch and
// receive the same value or error. A failed fetch stores nothing.
//
// The fetch runs detached from ctx cancellation so that other waiters are not
// affected when the first caller gives up; ctx only bounds how long this caller
// waits. Use WithFetchTimeout to bound the fetch itself.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V], ttl ...time.Duration) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	return c.fetch(ctx, key, fetch, c.resolveTTL(ttl))
}

// fetch joins or starts the flight for key and waits for its result.
func (c *Cache[V]) fetch(ctx context.Context, key string, fetch FetchFunc[V], ttl time.Duration) (V, error) {
	var zero V
	if fetch == nil {
		return zero, ErrNilFetch
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// A flight that finished between our miss and this call has already stored the value.
		v, f, ok := c.beginFlight(key)
		if ok {
			return v, nil
		}

		c.inFlight.Add(1)
		defer c.inFlight.Add(-1)

		v, err := c.runFetch(ctx, fetch)
		c.endFlight(key, f, v, ttl, err == nil)
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// flight tracks a running fetch. Invalidating its key voids it so the
// fetched value is not stored.
type flight struct {
	voided bool
}

// beginFlight returns a live value for key without touching counters or
// recency, or registers a new flight when there is none.
func (c *Cache[V]) beginFlight(key string) (V, *flight, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok && !e.expired(c.opts.now()) {
		return e.value, nil, true
	}

	var zero V
	f := &flight{}
	c.flights[key] = f
	return zero, f, false
}

// endFlight unregisters f and stores value when store is set and the key
// was not invalidated while the fetch was running.
func (c *Cache[V]) endFlight(key string, f *flight, value V, ttl time.Duration, store bool) {
	c.mu.Lock()
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	if !store {
		c.mu.Unlock()
		return
	}
	if f.voided {
		c.mu.Unlock()
		c.opts.logger.Debug("discarding fetched value invalidated during fetch",
			logger.CacheKey(key),
		)
		return
	}
	victims := c.setLocked(key, value, ttl)
	cb := c.onEvict
	c.mu.Unlock()

	c.notify(cb, victims...)
}

type fetchResult[V any] struct {
	value V
	err   error
}

func (c *Cache[V]) runFetch(ctx context.Context, fetch FetchFunc[V]) (V, error) {
	fctx := context.WithoutCancel(ctx)
	if c.opts.fetchTimeout <= 0 {
		return safeFetch(fctx, fetch)
	}

	fctx, cancel := context.WithTimeout(fctx, c.opts.fetchTimeout)
	defer cancel()

	done := make(chan fetchResult[V], 1)
	go func() {
		v, err := safeFetch(fctx, fetch)
		done <- fetchResult[V]{value: v, err: err}
	}()

	var zero V
	select {
	case r := <-done:
		if r.err != nil && errors.Is(fctx.Err(), context.DeadlineExceeded) {
			return zero, errors.Join(ErrFetchTimeout, r.err)
		}
		return r.value, r.err
	case <-fctx.Done():
		return zero, ErrFetchTimeout
	}
}

// safeFetch turns a panic into an error so that one bad fetch cannot take
// down every goroutine waiting on the same flight.
func safeFetch[V any](ctx context.Context, fetch FetchFunc[V]) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanic, r)
		}
	}()
	return fetch(ctx)
}
