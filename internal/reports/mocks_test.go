package reports_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/clinicdash/internal/reports"
)

// MockRepository is a mock implementation of reports.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListClinics(ctx context.Context) ([]reports.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reports.Clinic), args.Error(1)
}

func (m *MockRepository) ClinicSummary(ctx context.Context, id uuid.UUID, since time.Time) (reports.ClinicMetrics, error) {
	args := m.Called(ctx, id, since)
	return args.Get(0).(reports.ClinicMetrics), args.Error(1)
}

func (m *MockRepository) ClinicScores(ctx context.Context, since time.Time) ([]reports.ClinicMetrics, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reports.ClinicMetrics), args.Error(1)
}
