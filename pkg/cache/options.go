package cache

import (
	"log/slog"
	"time"
)

const (
	DefaultMaxSize           = 200
	DefaultTTL               = 10 * time.Minute
	DefaultSweepInterval     = time.Minute
	DefaultWarmUpConcurrency = 8
)

// Config holds cache settings loaded from the environment.
type Config struct {
	// MaxSize is the maximum number of entries.
	MaxSize int `env:"CACHE_MAX_SIZE" envDefault:"200"`
	// DefaultTTL applies when Set is called without a TTL.
	DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"10m"`
	// SweepInterval is the period of the background expiration sweep.
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1m"`
	// FetchTimeout bounds a single fetch; zero disables it.
	FetchTimeout time.Duration `env:"CACHE_FETCH_TIMEOUT" envDefault:"0s"`
	// WarmUpConcurrency limits parallel warm-up fetches.
	WarmUpConcurrency int `env:"CACHE_WARMUP_CONCURRENCY" envDefault:"8"`
}

type options struct {
	maxSize           int
	defaultTTL        time.Duration
	sweepInterval     time.Duration
	fetchTimeout      time.Duration
	warmUpConcurrency int
	now               func() time.Time
	logger            *slog.Logger
}

func defaultOptions() *options {
	return &options{
		maxSize:           DefaultMaxSize,
		defaultTTL:        DefaultTTL,
		sweepInterval:     DefaultSweepInterval,
		warmUpConcurrency: DefaultWarmUpConcurrency,
		now:               time.Now,
	}
}

// Option configures a Cache.
type Option func(*options)

// WithMaxSize sets the entry count bound. It panics if n is not positive.
func WithMaxSize(n int) Option {
	if n <= 0 {
		panic("WithMaxSize: size must be > 0")
	}
	return func(o *options) { o.maxSize = n }
}

// WithDefaultTTL sets the TTL used when Set or GetOrFetch get no explicit TTL.
func WithDefaultTTL(d time.Duration) Option {
	if d <= 0 {
		panic("WithDefaultTTL: duration must be > 0")
	}
	return func(o *options) { o.defaultTTL = d }
}

// WithSweepInterval sets how often the background sweeper scans for expired entries.
func WithSweepInterval(d time.Duration) Option {
	if d <= 0 {
		panic("WithSweepInterval: duration must be > 0")
	}
	return func(o *options) { o.sweepInterval = d }
}

// WithFetchTimeout bounds every fetch started by GetOrFetch or WarmUp.
// Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("WithFetchTimeout: duration must be >= 0")
	}
	return func(o *options) { o.fetchTimeout = d }
}

// WithWarmUpConcurrency limits how many warm-up fetches run at once.
func WithWarmUpConcurrency(n int) Option {
	if n <= 0 {
		panic("WithWarmUpConcurrency: limit must be > 0")
	}
	return func(o *options) { o.warmUpConcurrency = n }
}

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used by the sweeper and warm-up.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewFromConfig creates a cache from Config, then applies opts on top.
// Zero values in cfg keep the package defaults.
func NewFromConfig[V any](cfg Config, opts ...Option) *Cache[V] {
	configOpts := make([]Option, 0, 5)

	if cfg.MaxSize > 0 {
		configOpts = append(configOpts, WithMaxSize(cfg.MaxSize))
	}
	if cfg.DefaultTTL > 0 {
		configOpts = append(configOpts, WithDefaultTTL(cfg.DefaultTTL))
	}
	if cfg.SweepInterval > 0 {
		configOpts = append(configOpts, WithSweepInterval(cfg.SweepInterval))
	}
	if cfg.FetchTimeout > 0 {
		configOpts = append(configOpts, WithFetchTimeout(cfg.FetchTimeout))
	}
	if cfg.WarmUpConcurrency > 0 {
		configOpts = append(configOpts, WithWarmUpConcurrency(cfg.WarmUpConcurrency))
	}

	configOpts = append(configOpts, opts...)

	return New[V](configOpts...)
}
