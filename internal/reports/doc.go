// Package reports serves the clinic dashboard reports: the clinic list, a
// per-clinic summary over a rolling window and a ranking of all clinics.
//
// Every report is read through a shared in-memory cache so that concurrent
// dashboard requests for the same report trigger a single database query:
//
//	c := cache.New[any](cache.WithMaxSize(500))
//	svc := reports.NewService(reports.NewPGRepository(pool), c, cfg)
//
//	summary, err := svc.Summary(ctx, clinicID)
//
// Cache keys follow a naming convention so a whole clinic can be dropped at
// once after its data changes:
//
//	clinic:<id>:summary
//	clinics:list
//	clinics:ranking
//
// InvalidateClinic removes every "clinic:<id>:" key and the ranking.
//
// # Ranking
//
// Clinics are scored as
//
//	0.5*completion + 0.3*rating/5 + 0.2*min(utilisation, 1)
//
// where completion is completed over resolved appointments and utilisation is
// booked appointments over daily capacity times window days. Ties are ordered
// by name, then id.
package reports
