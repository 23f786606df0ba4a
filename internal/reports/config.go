package reports

import "time"

// Config controls the reporting window and how long each report stays cached.
type Config struct {
	Window     time.Duration `env:"REPORTS_WINDOW" envDefault:"720h"`
	SummaryTTL time.Duration `env:"REPORTS_SUMMARY_TTL" envDefault:"5m"`
	RankingTTL time.Duration `env:"REPORTS_RANKING_TTL" envDefault:"10m"`
	ListTTL    time.Duration `env:"REPORTS_LIST_TTL" envDefault:"30m"`
}

// DefaultConfig returns the values used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		Window:     30 * 24 * time.Hour,
		SummaryTTL: 5 * time.Minute,
		RankingTTL: 10 * time.Minute,
		ListTTL:    30 * time.Minute,
	}
}
