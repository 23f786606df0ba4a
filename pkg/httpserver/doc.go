// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness probes.
//
// Run blocks until its context is cancelled, SIGINT or SIGTERM arrives, or
// Shutdown is called. In-flight requests are drained within the shutdown
// timeout and shutdown hooks run afterwards, which is where background
// workers such as the cache sweeper are stopped:
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook(func(*slog.Logger) { reportCache.Stop() }),
//	)
//
//	r := chi.NewRouter()
//	r.Get("/livez", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Readiness checks run concurrently and each is bounded by its own timeout.
//
// Run wraps listen errors with ErrStart; Shutdown wraps drain errors with
// ErrShutdown.
package httpserver
