// Package ratelimiter throttles expensive admin operations with a token
// bucket per client.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: 10 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.KeyByIP, log)).Post("/cache/warmup", warmUp)
//
// A bucket starts full. Each request takes one token, and RefillRate tokens
// come back every RefillInterval up to Capacity. A denied request does not
// consume anything; the middleware answers 429 with X-RateLimit-* and
// Retry-After headers.
package ratelimiter
