package reports

import "github.com/google/uuid"

const (
	keyClinicList = "clinics:list"
	keyRanking    = "clinics:ranking"
)

// ClinicKeyPrefix is the prefix shared by every cache key of one clinic.
func ClinicKeyPrefix(id uuid.UUID) string {
	return "clinic:" + id.String() + ":"
}

// SummaryKey is the cache key of a clinic summary.
func SummaryKey(id uuid.UUID) string {
	return ClinicKeyPrefix(id) + "summary"
}

// ListKey is the cache key of the clinic list.
func ListKey() string { return keyClinicList }

// RankingKey is the cache key of the clinic ranking.
func RankingKey() string { return keyRanking }
