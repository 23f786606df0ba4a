// Package pg connects the dashboard to PostgreSQL through pgx/v5 and keeps the
// reporting schema current with goose/v3 migrations.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log, db.Migrations); err != nil {
//		return err
//	}
//
// Healthcheck returns a func(context.Context) error suitable for
// httpserver.HealthCheckHandler. IsNotFoundError and friends classify pgx
// errors without callers importing pgconn.
package pg
