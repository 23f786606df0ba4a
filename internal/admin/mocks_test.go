package admin_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/clinicdash/internal/reports"
	"github.com/dmitrymomot/clinicdash/pkg/cache"
)

// MockReports is a mock implementation of admin.Reports.
type MockReports struct {
	mock.Mock
}

func (m *MockReports) Clinics(ctx context.Context) ([]reports.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reports.Clinic), args.Error(1)
}

func (m *MockReports) Summary(ctx context.Context, id uuid.UUID) (reports.Summary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reports.Summary), args.Error(1)
}

func (m *MockReports) Ranking(ctx context.Context) ([]reports.RankedClinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reports.RankedClinic), args.Error(1)
}

func (m *MockReports) InvalidateClinic(id uuid.UUID) int {
	args := m.Called(id)
	return args.Int(0)
}

func (m *MockReports) WarmUp(ctx context.Context) cache.WarmUpReport {
	args := m.Called(ctx)
	return args.Get(0).(cache.WarmUpReport)
}
