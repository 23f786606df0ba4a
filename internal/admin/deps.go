package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/clinicdash/internal/reports"
	"github.com/dmitrymomot/clinicdash/pkg/cache"
)

// Reports is the report service consumed by the API.
type Reports interface {
	Clinics(ctx context.Context) ([]reports.Clinic, error)
	Summary(ctx context.Context, id uuid.UUID) (reports.Summary, error)
	Ranking(ctx context.Context) ([]reports.RankedClinic, error)
	InvalidateClinic(id uuid.UUID) int
	WarmUp(ctx context.Context) cache.WarmUpReport
}

// Cache is the cache management surface, satisfied by *cache.Cache[any].
type Cache interface {
	Stats() cache.Stats
	Keys() []string
	Inspect(key string) (cache.EntryInfo, bool)
	Invalidate(key string)
	InvalidatePattern(match cache.Matcher) int
	Clear()
}
