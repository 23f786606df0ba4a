package reports

import (
	"cmp"
	"slices"
)

// Score weights. They sum to 1 so a score stays within [0, 1].
const (
	weightCompletion  = 0.5
	weightRating      = 0.3
	weightUtilisation = 0.2

	maxRating = 5.0
)

// CompletionRate is the share of resolved appointments that were completed.
// Scheduled appointments are not resolved yet and do not count.
func CompletionRate(m ClinicMetrics) float64 {
	resolved := m.Completed + m.Cancelled + m.NoShow
	if resolved == 0 {
		return 0
	}
	return float64(m.Completed) / float64(resolved)
}

// Utilisation is booked appointments over the clinic capacity for days days.
// Cancelled appointments free their slot. The result is not capped.
func Utilisation(m ClinicMetrics, days float64) float64 {
	capacity := float64(m.Clinic.Capacity) * days
	if capacity <= 0 {
		return 0
	}
	return float64(m.Appointments-m.Cancelled) / capacity
}

// Score combines completion rate, average rating and utilisation (capped at 1).
func Score(m ClinicMetrics, days float64) float64 {
	return weightCompletion*CompletionRate(m) +
		weightRating*min(m.AvgRating/maxRating, 1) +
		weightUtilisation*min(Utilisation(m, days), 1)
}

// Rank scores every clinic and orders them by score descending. Equal scores
// are ordered by name and then by id so the result is deterministic.
func Rank(metrics []ClinicMetrics, days float64) []RankedClinic {
	ranked := make([]RankedClinic, 0, len(metrics))
	for _, m := range metrics {
		ranked = append(ranked, RankedClinic{
			Clinic:         m.Clinic,
			Score:          Score(m, days),
			CompletionRate: CompletionRate(m),
			AvgRating:      m.AvgRating,
			Utilisation:    Utilisation(m, days),
		})
	}

	slices.SortFunc(ranked, func(a, b RankedClinic) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Clinic.Name, b.Clinic.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Clinic.ID.String(), b.Clinic.ID.String())
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
