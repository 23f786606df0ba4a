package reports_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clinicdash/internal/reports"
	"github.com/dmitrymomot/clinicdash/pkg/cache"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, repo *MockRepository) (*reports.Service, *cache.Cache[any]) {
	t.Helper()
	c := cache.New[any](cache.WithMaxSize(50))
	svc := reports.NewService(repo, c, reports.Config{Window: 30 * 24 * time.Hour},
		reports.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, c
}

func TestService_Clinics(t *testing.T) {
	t.Parallel()

	repo := new(MockRepository)
	svc, c := newService(t, repo)

	clinics := []reports.Clinic{{ID: uuid.New(), Name: "North"}, {ID: uuid.New(), Name: "South"}}
	repo.On("ListClinics", mock.Anything).Return(clinics, nil).Once()

	got, err := svc.Clinics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, clinics, got)

	got, err = svc.Clinics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, clinics, got)

	repo.AssertNumberOfCalls(t, "ListClinics", 1)

	info, ok := c.Inspect(reports.ListKey())
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute, info.TTL)
}

func TestService_Summary(t *testing.T) {
	t.Parallel()

	t.Run("builds summary over window", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newService(t, repo)

		id := uuid.New()
		since := fixedNow.Add(-30 * 24 * time.Hour)
		repo.On("ClinicSummary", mock.Anything, id, since).Return(reports.ClinicMetrics{
			Clinic:       reports.Clinic{ID: id, Name: "North", Capacity: 2},
			Appointments: 40,
			Completed:    24,
			Cancelled:    4,
			NoShow:       2,
			RevenueCents: 120000,
			Ratings:      10,
			AvgRating:    4.5,
		}, nil).Once()

		s, err := svc.Summary(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, id, s.Clinic.ID)
		assert.Equal(t, since, s.From)
		assert.Equal(t, fixedNow, s.To)
		assert.InDelta(t, 0.8, s.CompletionRate, 1e-9)
		assert.InDelta(t, 0.6, s.Utilisation, 1e-9)
		assert.Equal(t, int64(120000), s.RevenueCents)

		_, err = svc.Summary(context.Background(), id)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		repo := new(MockRepository)
		svc, c := newService(t, repo)

		id := uuid.New()
		repo.On("ClinicSummary", mock.Anything, id, mock.Anything).
			Return(reports.ClinicMetrics{}, reports.ErrClinicNotFound).Twice()

		_, err := svc.Summary(context.Background(), id)
		assert.ErrorIs(t, err, reports.ErrClinicNotFound)
		_, err = svc.Summary(context.Background(), id)
		assert.ErrorIs(t, err, reports.ErrClinicNotFound)

		assert.Equal(t, 0, c.Len())
		repo.AssertExpectations(t)
	})

	t.Run("concurrent requests share one query", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newService(t, repo)

		id := uuid.New()
		repo.On("ClinicSummary", mock.Anything, id, mock.Anything).
			After(100*time.Millisecond).
			Return(reports.ClinicMetrics{Clinic: reports.Clinic{ID: id}}, nil).Once()

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Summary(context.Background(), id)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		repo.AssertNumberOfCalls(t, "ClinicSummary", 1)
	})
}

func TestService_Ranking(t *testing.T) {
	t.Parallel()

	repo := new(MockRepository)
	svc, _ := newService(t, repo)

	repo.On("ClinicScores", mock.Anything, fixedNow.Add(-30*24*time.Hour)).Return([]reports.ClinicMetrics{
		{Clinic: reports.Clinic{ID: uuid.New(), Name: "Weak", Capacity: 1}, Appointments: 10, Completed: 1, Cancelled: 9},
		{Clinic: reports.Clinic{ID: uuid.New(), Name: "Strong", Capacity: 1}, Appointments: 30, Completed: 30, AvgRating: 5},
	}, nil).Once()

	ranked, err := svc.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Strong", ranked[0].Clinic.Name)
	assert.Equal(t, 1, ranked[0].Rank)

	_, err = svc.Ranking(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Ranking_Error(t *testing.T) {
	t.Parallel()

	repo := new(MockRepository)
	svc, _ := newService(t, repo)

	boom := errors.New("connection reset")
	repo.On("ClinicScores", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := svc.Ranking(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_InvalidateClinic(t *testing.T) {
	t.Parallel()

	repo := new(MockRepository)
	svc, c := newService(t, repo)

	a, b := uuid.New(), uuid.New()
	c.Set(reports.SummaryKey(a), reports.Summary{})
	c.Set(reports.ClinicKeyPrefix(a)+"revenue", 1)
	c.Set(reports.SummaryKey(b), reports.Summary{})
	c.Set(reports.RankingKey(), []reports.RankedClinic{})
	c.Set(reports.ListKey(), []reports.Clinic{})
	c.Set("session:1", "unrelated")

	removed := svc.InvalidateClinic(a)
	assert.Equal(t, 3, removed)

	assert.ElementsMatch(t,
		[]string{reports.SummaryKey(b), reports.ListKey(), "session:1"},
		c.Keys(),
	)

	assert.Equal(t, 2, svc.InvalidateAll())
	assert.Equal(t, []string{"session:1"}, c.Keys())
}

func TestService_WarmUp(t *testing.T) {
	t.Parallel()

	t.Run("loads list ranking and summaries", func(t *testing.T) {
		repo := new(MockRepository)
		svc, c := newService(t, repo)

		a, b := uuid.New(), uuid.New()
		repo.On("ListClinics", mock.Anything).
			Return([]reports.Clinic{{ID: a, Name: "A"}, {ID: b, Name: "B"}}, nil).Once()
		repo.On("ClinicScores", mock.Anything, mock.Anything).Return([]reports.ClinicMetrics{}, nil).Once()
		repo.On("ClinicSummary", mock.Anything, a, mock.Anything).
			Return(reports.ClinicMetrics{Clinic: reports.Clinic{ID: a}}, nil).Once()
		repo.On("ClinicSummary", mock.Anything, b, mock.Anything).
			Return(reports.ClinicMetrics{}, errors.New("timeout")).Once()

		report := svc.WarmUp(context.Background())
		assert.Equal(t, 3, report.Loaded)
		assert.Equal(t, 1, report.Failed)

		assert.ElementsMatch(t,
			[]string{reports.ListKey(), reports.RankingKey(), reports.SummaryKey(a)},
			c.Keys(),
		)
		repo.AssertExpectations(t)
	})

	t.Run("list failure skips summaries", func(t *testing.T) {
		repo := new(MockRepository)
		svc, c := newService(t, repo)

		boom := errors.New("db down")
		repo.On("ListClinics", mock.Anything).Return(nil, boom)
		repo.On("ClinicScores", mock.Anything, mock.Anything).Return(nil, boom).Once()

		report := svc.WarmUp(context.Background())
		assert.Equal(t, 0, report.Loaded)
		assert.Equal(t, 2, report.Failed)
		assert.Equal(t, 0, c.Len())
		repo.AssertNotCalled(t, "ClinicSummary", mock.Anything, mock.Anything, mock.Anything)
	})
}
