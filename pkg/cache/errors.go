package cache

import "errors"

var (
	// ErrNilFetch is returned by GetOrFetch when no fetch function is supplied.
	ErrNilFetch = errors.New("cache: fetch function is nil")

	// ErrFetchTimeout is returned when a fetch exceeds the configured fetch timeout.
	ErrFetchTimeout = errors.New("cache: fetch timed out")

	// ErrFetchPanic is returned to every waiter when a fetch function panics.
	ErrFetchPanic = errors.New("cache: fetch panicked")

	// ErrUnexpectedType is returned by GetOrFetchAs when a key holds a value of another type.
	ErrUnexpectedType = errors.New("cache: unexpected value type")

	// ErrAlreadyStarted is returned by Start when the sweeper is already running.
	ErrAlreadyStarted = errors.New("cache: sweeper already started")
)
