package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/clinicdash/handler"
	"github.com/dmitrymomot/clinicdash/pkg/binder"
	"github.com/dmitrymomot/clinicdash/pkg/clientip"
	"github.com/dmitrymomot/clinicdash/pkg/requestid"
)

const (
	defaultStatsInterval  = 2 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

type routerOptions struct {
	routes  []func(chi.Router)
	limiter func(http.Handler) http.Handler
}

// Option configures the router.
type Option func(*routerOptions)

// WithRoutes mounts extra routes, such as health probes, on the router.
func WithRoutes(fn func(r chi.Router)) Option {
	return func(o *routerOptions) {
		if fn != nil {
			o.routes = append(o.routes, fn)
		}
	}
}

// WithMutationLimiter guards the cache-wide operations (pattern delete,
// clear and warm-up) with mw, typically a ratelimiter.Middleware.
func WithMutationLimiter(mw func(http.Handler) http.Handler) Option {
	return func(o *routerOptions) { o.limiter = mw }
}

// NewRouter builds the admin API:
//
//	GET    /clinics
//	GET    /clinics/ranking
//	GET    /clinics/{id}/summary
//	POST   /clinics/{id}/invalidate
//	GET    /cache/stats
//	GET    /cache/stats/stream      DataStar SSE
//	GET    /cache/keys
//	GET    /cache/keys/{key}
//	DELETE /cache/keys/{key}
//	DELETE /cache?pattern=<regexp>
//	DELETE /cache/all
//	POST   /cache/warmup[?wait=true]
func NewRouter(rep Reports, c Cache, cfg Config, log *slog.Logger, opts ...Option) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = defaultStatsInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	h := &handlers{reports: rep, cache: c, cfg: cfg, log: log}
	onError := handler.NewErrorHandler(log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Route("/clinics", func(r chi.Router) {
		r.Use(timeout(cfg.RequestTimeout))
		r.Get("/", wrap(h.listClinics, onError))
		r.Get("/ranking", wrap(h.ranking, onError))
		r.Get("/{id}/summary", wrap(h.summary, onError, binder.Path(urlParam)))
		r.Post("/{id}/invalidate", wrap(h.invalidateClinic, onError, binder.Path(urlParam)))
	})

	r.Route("/cache", func(r chi.Router) {
		r.Get("/stats", wrap(h.stats, onError))
		r.Get("/stats/stream", wrap(h.statsStream, onError))
		r.Get("/keys", wrap(h.listKeys, onError))
		r.Get("/keys/{key}", wrap(h.inspectKey, onError, binder.Path(urlParam)))
		r.Delete("/keys/{key}", wrap(h.deleteKey, onError, binder.Path(urlParam)))

		r.Group(func(r chi.Router) {
			if o.limiter != nil {
				r.Use(o.limiter)
			}
			r.Delete("/", wrap(h.deletePattern, onError, binder.Query()))
			r.Delete("/all", wrap(h.clear, onError))
			r.Post("/warmup", wrap(h.warmUp, onError, binder.Query()))
		})
	})

	for _, fn := range o.routes {
		fn(r)
	}
	return r
}

func wrap[R any](fn handler.HandlerFunc[handler.Context, R], onError handler.ErrorHandler[handler.Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](onError),
	)
}
