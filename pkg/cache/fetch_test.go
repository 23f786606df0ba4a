package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clinicdash/pkg/cache"
)

func TestCache_GetOrFetch(t *testing.T) {
	t.Parallel()

	t.Run("miss fetches and stores", func(t *testing.T) {
		c := cache.New[string]()
		var calls atomic.Int32

		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "value", nil
		}

		val, err := c.GetOrFetch(context.Background(), "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", val)

		val, err = c.GetOrFetch(context.Background(), "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", val)

		assert.Equal(t, int32(1), calls.Load())

		s := c.Stats()
		assert.Equal(t, uint64(1), s.Hits)
		assert.Equal(t, uint64(1), s.Misses)
	})

	t.Run("explicit ttl is applied", func(t *testing.T) {
		c := cache.New[int]()

		_, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (int, error) {
			return 1, nil
		}, 42*time.Second)
		require.NoError(t, err)

		info, ok := c.Inspect("k")
		require.True(t, ok)
		assert.Equal(t, 42*time.Second, info.TTL)
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		c := cache.New[int]()
		var calls atomic.Int32

		slowCountingFetch := func(ctx context.Context) (int, error) {
			calls.Add(1)
			time.Sleep(200 * time.Millisecond)
			return 7, nil
		}

		const callers = 2
		results := make([]int, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = c.GetOrFetch(context.Background(), "x", slowCountingFetch)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for i := range callers {
			require.NoError(t, errs[i])
			assert.Equal(t, 7, results[i])
		}
	})

	t.Run("many concurrent callers", func(t *testing.T) {
		c := cache.New[int]()
		var calls atomic.Int32
		release := make(chan struct{})

		fetch := func(ctx context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 99, nil
		}

		const callers = 50
		var wg sync.WaitGroup
		var got atomic.Int32
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := c.GetOrFetch(context.Background(), "x", fetch)
				if err == nil && v == 99 {
					got.Add(1)
				}
			}()
		}

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, int32(callers), got.Load())
		assert.Equal(t, int64(0), c.Stats().InFlight)
	})

	t.Run("failure is shared and not stored", func(t *testing.T) {
		c := cache.New[int]()
		boom := errors.New("database unavailable")
		var calls atomic.Int32

		fetch := func(ctx context.Context) (int, error) {
			calls.Add(1)
			time.Sleep(100 * time.Millisecond)
			return 0, boom
		}

		var wg sync.WaitGroup
		errs := make([]error, 3)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = c.GetOrFetch(context.Background(), "x", fetch)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, err := range errs {
			assert.ErrorIs(t, err, boom)
		}
		assert.Equal(t, 0, c.Len())

		// A later call retries.
		val, err := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
			return 5, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 5, val)
	})

	t.Run("nil fetch", func(t *testing.T) {
		c := cache.New[int]()

		_, err := c.GetOrFetch(context.Background(), "x", nil)
		assert.ErrorIs(t, err, cache.ErrNilFetch)
	})

	t.Run("panicking fetch becomes an error", func(t *testing.T) {
		c := cache.New[int]()

		_, err := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
			panic("unexpected nil row")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, cache.ErrFetchPanic)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("fetch timeout", func(t *testing.T) {
		c := cache.New[int](cache.WithFetchTimeout(50 * time.Millisecond))

		_, err := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		assert.ErrorIs(t, err, cache.ErrFetchTimeout)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("fetch timeout with fetch ignoring context", func(t *testing.T) {
		c := cache.New[int](cache.WithFetchTimeout(30 * time.Millisecond))
		release := make(chan struct{})
		defer close(release)

		start := time.Now()
		_, err := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
			<-release
			return 1, nil
		})
		assert.ErrorIs(t, err, cache.ErrFetchTimeout)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("waiter gives up on its own context", func(t *testing.T) {
		c := cache.New[int]()
		release := make(chan struct{})
		var fetchCtxErr atomic.Value

		fetch := func(ctx context.Context) (int, error) {
			<-release
			if err := ctx.Err(); err != nil {
				fetchCtxErr.Store(err)
			}
			return 3, nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			_, err := c.GetOrFetch(ctx, "x", fetch)
			errCh <- err
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)

		close(release)

		// The shared fetch still completes and stores its value.
		require.Eventually(t, func() bool {
			_, ok := c.Inspect("x")
			return ok
		}, time.Second, 5*time.Millisecond)
		assert.Nil(t, fetchCtxErr.Load(), "fetch context must not inherit caller cancellation")
	})

	t.Run("invalidating the key during fetch discards the result", func(t *testing.T) {
		c := cache.New[int]()
		release := make(chan struct{})

		resCh := make(chan int, 1)
		go func() {
			v, _ := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
				<-release
				return 1, nil
			})
			resCh <- v
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)

		c.Invalidate("x")
		close(release)

		assert.Equal(t, 1, <-resCh, "waiters still receive the fetched value")
		_, ok := c.Inspect("x")
		assert.False(t, ok, "stale value must not be stored")
	})

	t.Run("invalidating other keys during fetch keeps the result", func(t *testing.T) {
		c := cache.New[int]()
		c.Set("clinic:a:summary", 10)
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.GetOrFetch(context.Background(), "clinic:b:summary", func(ctx context.Context) (int, error) {
				<-release
				return 2, nil
			})
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)

		c.Invalidate("absent-key")
		c.Invalidate("clinic:a:summary")
		assert.Equal(t, 0, c.InvalidatePattern(cache.MatchPrefix("clinic:a:")))
		close(release)
		<-done

		v, ok := c.Get("clinic:b:summary")
		require.True(t, ok, "unrelated invalidation must not void the fetch")
		assert.Equal(t, 2, v)
	})

	t.Run("matching pattern during fetch discards the result", func(t *testing.T) {
		c := cache.New[int]()
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.GetOrFetch(context.Background(), "clinic:b:summary", func(ctx context.Context) (int, error) {
				<-release
				return 2, nil
			})
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)

		c.InvalidatePattern(cache.MatchPrefix("clinic:b:"))
		close(release)
		<-done

		_, ok := c.Inspect("clinic:b:summary")
		assert.False(t, ok)
	})

	t.Run("clear during fetch discards the result", func(t *testing.T) {
		c := cache.New[int]()
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
				<-release
				return 1, nil
			})
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)

		c.Clear()
		close(release)
		<-done

		assert.Equal(t, 0, c.Len())
	})

	t.Run("next fetch after a voided one is stored", func(t *testing.T) {
		c := cache.New[int]()
		release := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
				<-release
				return 1, nil
			})
		}()

		require.Eventually(t, func() bool {
			return c.Stats().InFlight == 1
		}, time.Second, 5*time.Millisecond)
		c.Invalidate("x")
		close(release)
		<-done

		v, err := c.GetOrFetch(context.Background(), "x", func(ctx context.Context) (int, error) {
			return 2, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		_, ok := c.Inspect("x")
		assert.True(t, ok)
	})

	t.Run("panicking evict callback does not break the fetch", func(t *testing.T) {
		c := cache.New[int](cache.WithMaxSize(1))
		c.SetEvictCallback(func(string, int, cache.EvictReason) {
			panic("callback failure")
		})
		c.Set("a", 1)

		v, err := c.GetOrFetch(context.Background(), "b", func(ctx context.Context) (int, error) {
			return 2, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		assert.Equal(t, []string{"b"}, c.Keys())

		assert.NotPanics(t, func() { c.Set("c", 3) })
	})

	t.Run("fetched value respects capacity", func(t *testing.T) {
		c := cache.New[int](cache.WithMaxSize(1))
		c.Set("a", 1)

		_, err := c.GetOrFetch(context.Background(), "b", func(ctx context.Context) (int, error) {
			return 2, nil
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"b"}, c.Keys())
		assert.Equal(t, uint64(1), c.Stats().Evictions)
	})
}
