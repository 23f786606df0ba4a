package admin

import "time"

// Config tunes the admin API.
type Config struct {
	// StatsInterval is how often the stats stream pushes a snapshot.
	StatsInterval time.Duration `env:"ADMIN_STATS_INTERVAL" envDefault:"2s"`
	// RequestTimeout bounds report requests; streams are not affected.
	RequestTimeout time.Duration `env:"ADMIN_REQUEST_TIMEOUT" envDefault:"15s"`
}
