package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/clinicdash/pkg/pg"
)

// Repository reads clinic data from the primary store.
type Repository interface {
	// ListClinics returns every clinic ordered by name.
	ListClinics(ctx context.Context) ([]Clinic, error)

	// ClinicSummary returns the aggregates of one clinic since the given time.
	// Returns ErrClinicNotFound if no clinic has the id.
	ClinicSummary(ctx context.Context, id uuid.UUID, since time.Time) (ClinicMetrics, error)

	// ClinicScores returns the aggregates of every clinic since the given time.
	ClinicScores(ctx context.Context, since time.Time) ([]ClinicMetrics, error)
}

// DBTX is the subset of pgxpool.Pool and pgx.Tx used by PGRepository.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGRepository implements Repository on PostgreSQL.
type PGRepository struct {
	db DBTX
}

// NewPGRepository creates a repository over a pool or a transaction.
func NewPGRepository(db DBTX) *PGRepository {
	return &PGRepository{db: db}
}

const listClinicsQuery = `
SELECT id, name, city, capacity, created_at
FROM clinics
ORDER BY name, id`

const metricsQuery = `
SELECT c.id, c.name, c.city, c.capacity, c.created_at,
       COALESCE(a.total, 0)::bigint,
       COALESCE(a.completed, 0)::bigint,
       COALESCE(a.cancelled, 0)::bigint,
       COALESCE(a.no_show, 0)::bigint,
       COALESCE(a.revenue_cents, 0)::bigint,
       COALESCE(r.ratings, 0)::bigint,
       COALESCE(r.avg_rating, 0)::float8
FROM clinics c
LEFT JOIN LATERAL (
    SELECT count(*)                                              AS total,
           count(*) FILTER (WHERE status = 'completed')          AS completed,
           count(*) FILTER (WHERE status = 'cancelled')          AS cancelled,
           count(*) FILTER (WHERE status = 'no_show')            AS no_show,
           sum(revenue_cents) FILTER (WHERE status = 'completed') AS revenue_cents
    FROM appointments
    WHERE clinic_id = c.id AND scheduled_at >= $1
) a ON true
LEFT JOIN LATERAL (
    SELECT count(*) AS ratings, avg(rating) AS avg_rating
    FROM patient_ratings
    WHERE clinic_id = c.id AND created_at >= $1
) r ON true`

func (r *PGRepository) ListClinics(ctx context.Context) ([]Clinic, error) {
	rows, err := r.db.Query(ctx, listClinicsQuery)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	clinics, err := pgx.CollectRows(rows, scanClinic)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	return clinics, nil
}

func (r *PGRepository) ClinicSummary(ctx context.Context, id uuid.UUID, since time.Time) (ClinicMetrics, error) {
	m, err := scanMetrics(r.db.QueryRow(ctx, metricsQuery+"\nWHERE c.id = $2", since, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return ClinicMetrics{}, ErrClinicNotFound
		}
		return ClinicMetrics{}, fmt.Errorf("clinic summary: %w", err)
	}
	return m, nil
}

func (r *PGRepository) ClinicScores(ctx context.Context, since time.Time) ([]ClinicMetrics, error) {
	rows, err := r.db.Query(ctx, metricsQuery+"\nORDER BY c.name, c.id", since)
	if err != nil {
		return nil, fmt.Errorf("clinic scores: %w", err)
	}
	metrics, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ClinicMetrics, error) {
		return scanMetrics(row)
	})
	if err != nil {
		return nil, fmt.Errorf("clinic scores: %w", err)
	}
	return metrics, nil
}

func scanClinic(row pgx.CollectableRow) (Clinic, error) {
	var c Clinic
	err := row.Scan(&c.ID, &c.Name, &c.City, &c.Capacity, &c.CreatedAt)
	return c, err
}

func scanMetrics(row pgx.Row) (ClinicMetrics, error) {
	var m ClinicMetrics
	err := row.Scan(
		&m.Clinic.ID, &m.Clinic.Name, &m.Clinic.City, &m.Clinic.Capacity, &m.Clinic.CreatedAt,
		&m.Appointments, &m.Completed, &m.Cancelled, &m.NoShow, &m.RevenueCents,
		&m.Ratings, &m.AvgRating,
	)
	return m, err
}
