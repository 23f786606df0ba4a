package reports

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is a single clinic location.
type Clinic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Capacity  int       `json:"capacity"` // appointments per day
	CreatedAt time.Time `json:"created_at"`
}

// ClinicMetrics are raw appointment and rating aggregates of one clinic over
// a reporting window.
type ClinicMetrics struct {
	Clinic       Clinic
	Appointments int64
	Completed    int64
	Cancelled    int64
	NoShow       int64
	RevenueCents int64
	Ratings      int64
	AvgRating    float64
}

// Summary is the per-clinic report served by the dashboard.
type Summary struct {
	Clinic         Clinic    `json:"clinic"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Appointments   int64     `json:"appointments"`
	Completed      int64     `json:"completed"`
	Cancelled      int64     `json:"cancelled"`
	NoShow         int64     `json:"no_show"`
	CompletionRate float64   `json:"completion_rate"`
	Utilisation    float64   `json:"utilisation"`
	RevenueCents   int64     `json:"revenue_cents"`
	Ratings        int64     `json:"ratings"`
	AvgRating      float64   `json:"avg_rating"`
}

// RankedClinic is one row of the clinic ranking.
type RankedClinic struct {
	Rank           int     `json:"rank"`
	Clinic         Clinic  `json:"clinic"`
	Score          float64 `json:"score"`
	CompletionRate float64 `json:"completion_rate"`
	AvgRating      float64 `json:"avg_rating"`
	Utilisation    float64 `json:"utilisation"`
}
