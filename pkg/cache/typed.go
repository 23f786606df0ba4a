package cache

import (
	"context"
	"fmt"
	"time"
)

// AnyFetcher is satisfied by *Cache[any], the shape used when one cache
// stores values of several types.
type AnyFetcher interface {
	GetOrFetch(ctx context.Context, key string, fetch FetchFunc[any], ttl ...time.Duration) (any, error)
}

// GetOrFetchAs is GetOrFetch for a Cache[any] with a typed fetch function.
// It returns ErrUnexpectedType if key holds a value of a different type.
func GetOrFetchAs[T any](ctx context.Context, c AnyFetcher, key string, fetch FetchFunc[T], ttl ...time.Duration) (T, error) {
	var zero T
	if fetch == nil {
		return zero, ErrNilFetch
	}

	v, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		t, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return t, nil
	}, ttl...)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrUnexpectedType, key, v)
	}
	return t, nil
}
