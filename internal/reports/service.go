package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/clinicdash/pkg/cache"
	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// Cache is the part of *cache.Cache[any] the service depends on.
type Cache interface {
	cache.AnyFetcher
	Invalidate(key string)
	InvalidatePattern(match cache.Matcher) int
	WarmUp(ctx context.Context, entries []cache.WarmUpEntry[any]) cache.WarmUpReport
}

// Service serves clinic reports, memoizing every read in the cache.
type Service struct {
	repo   Repository
	cache  Cache
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a report service. Zero durations in cfg fall back to DefaultConfig.
func NewService(repo Repository, c Cache, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = def.SummaryTTL
	}
	if cfg.RankingTTL <= 0 {
		cfg.RankingTTL = def.RankingTTL
	}
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = def.ListTTL
	}

	s := &Service{
		repo:   repo,
		cache:  c,
		cfg:    cfg,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clinics returns all clinics.
func (s *Service) Clinics(ctx context.Context) ([]Clinic, error) {
	return cache.GetOrFetchAs(ctx, s.cache, ListKey(), s.repo.ListClinics, s.cfg.ListTTL)
}

// Summary returns the report of one clinic over the configured window.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (Summary, error) {
	return cache.GetOrFetchAs(ctx, s.cache, SummaryKey(id), s.summaryFetch(id), s.cfg.SummaryTTL)
}

func (s *Service) summaryFetch(id uuid.UUID) cache.FetchFunc[Summary] {
	return func(ctx context.Context) (Summary, error) {
		to := s.now()
		from := to.Add(-s.cfg.Window)

		m, err := s.repo.ClinicSummary(ctx, id, from)
		if err != nil {
			return Summary{}, err
		}
		return Summary{
			Clinic:         m.Clinic,
			From:           from,
			To:             to,
			Appointments:   m.Appointments,
			Completed:      m.Completed,
			Cancelled:      m.Cancelled,
			NoShow:         m.NoShow,
			CompletionRate: CompletionRate(m),
			Utilisation:    Utilisation(m, s.windowDays()),
			RevenueCents:   m.RevenueCents,
			Ratings:        m.Ratings,
			AvgRating:      m.AvgRating,
		}, nil
	}
}

// Ranking returns every clinic ordered by score.
func (s *Service) Ranking(ctx context.Context) ([]RankedClinic, error) {
	return cache.GetOrFetchAs(ctx, s.cache, RankingKey(), s.fetchRanking, s.cfg.RankingTTL)
}

func (s *Service) fetchRanking(ctx context.Context) ([]RankedClinic, error) {
	metrics, err := s.repo.ClinicScores(ctx, s.now().Add(-s.cfg.Window))
	if err != nil {
		return nil, err
	}
	return Rank(metrics, s.windowDays()), nil
}

// InvalidateClinic drops every cached report of the clinic together with the
// ranking it takes part in. Returns how many entries were removed.
func (s *Service) InvalidateClinic(id uuid.UUID) int {
	n := s.cache.InvalidatePattern(cache.MatchAny(
		cache.MatchPrefix(ClinicKeyPrefix(id)),
		func(key string) bool { return key == RankingKey() },
	))
	s.logger.Debug("clinic reports invalidated",
		logger.ClinicID(id),
		slog.Int("removed", n),
	)
	return n
}

// InvalidateAll drops every cached report, leaving unrelated keys alone.
func (s *Service) InvalidateAll() int {
	return s.cache.InvalidatePattern(cache.MatchAny(
		cache.MatchPrefix("clinic:"),
		cache.MatchPrefix("clinics:"),
	))
}

// WarmUp preloads the clinic list, the ranking and every clinic summary.
// Failures are logged by the cache and reflected in the report.
func (s *Service) WarmUp(ctx context.Context) cache.WarmUpReport {
	entries := []cache.WarmUpEntry[any]{
		{Key: ListKey(), Fetch: anyFetch(s.repo.ListClinics), TTL: s.cfg.ListTTL},
		{Key: RankingKey(), Fetch: anyFetch(s.fetchRanking), TTL: s.cfg.RankingTTL},
	}

	report := s.cache.WarmUp(ctx, entries)

	clinics, err := s.Clinics(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping summary warm-up", logger.Error(err))
		return report
	}

	summaries := make([]cache.WarmUpEntry[any], 0, len(clinics))
	for _, c := range clinics {
		summaries = append(summaries, cache.WarmUpEntry[any]{
			Key:   SummaryKey(c.ID),
			Fetch: anyFetch(s.summaryFetch(c.ID)),
			TTL:   s.cfg.SummaryTTL,
		})
	}
	more := s.cache.WarmUp(ctx, summaries)

	report.Loaded += more.Loaded
	report.Failed += more.Failed
	return report
}

func (s *Service) windowDays() float64 {
	return s.cfg.Window.Hours() / 24
}

func anyFetch[T any](fetch cache.FetchFunc[T]) cache.FetchFunc[any] {
	return func(ctx context.Context) (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
