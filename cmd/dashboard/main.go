// Command dashboard serves the clinic reporting admin API backed by Postgres
// and an in-memory report cache.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/clinicdash/internal/admin"
	"github.com/dmitrymomot/clinicdash/internal/db"
	"github.com/dmitrymomot/clinicdash/internal/reports"
	"github.com/dmitrymomot/clinicdash/pkg/cache"
	"github.com/dmitrymomot/clinicdash/pkg/clientip"
	"github.com/dmitrymomot/clinicdash/pkg/config"
	"github.com/dmitrymomot/clinicdash/pkg/httpserver"
	"github.com/dmitrymomot/clinicdash/pkg/logger"
	"github.com/dmitrymomot/clinicdash/pkg/pg"
	"github.com/dmitrymomot/clinicdash/pkg/ratelimiter"
	"github.com/dmitrymomot/clinicdash/pkg/requestid"
)

type appConfig struct {
	Logger  logger.Config
	PG      pg.Config
	Cache   cache.Config
	Reports reports.Config
	Admin   admin.Config
	Limits  ratelimiter.Config
	HTTP    httpserver.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("dashboard stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Logger,
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log, db.Migrations); err != nil {
		return err
	}

	c := cache.NewFromConfig[any](cfg.Cache, cache.WithLogger(log))
	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Stop()

	svc := reports.NewService(reports.NewPGRepository(pool), c, cfg.Reports, reports.WithLogger(log))

	go func() {
		report := svc.WarmUp(ctx)
		log.Info("initial cache warm-up finished",
			logger.Component("dashboard"),
			slog.Int("loaded", report.Loaded),
			slog.Int("failed", report.Failed),
		)
	}()

	limitStore := ratelimiter.NewMemoryStore()
	defer limitStore.Close()
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.Limits)
	if err != nil {
		return err
	}

	router := admin.NewRouter(svc, c, cfg.Admin, log,
		admin.WithMutationLimiter(ratelimiter.Middleware(limiter, ratelimiter.KeyByIP, log)),
		admin.WithRoutes(func(r chi.Router) {
			r.Get("/livez", httpserver.LivenessHandler())
			r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.HTTP.ReadinessTimeout,
				httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
			))
		}),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(func(*slog.Logger) { c.Stop() }),
	)

	if err := srv.Run(ctx, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := errors.Join(
		config.Load(&cfg.Logger),
		config.Load(&cfg.PG),
		config.Load(&cfg.Cache),
		config.Load(&cfg.Reports),
		config.Load(&cfg.Admin),
		config.Load(&cfg.Limits),
		config.Load(&cfg.HTTP),
	)
	return cfg, err
}
