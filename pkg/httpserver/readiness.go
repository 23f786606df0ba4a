package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/clinicdash/pkg/logger"
)

// Check is a named dependency probe such as a database ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler always answers 200 {"status":"alive"}.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, readiness{Status: "alive"})
	}
}

// ReadinessHandler runs every check concurrently, each bounded by timeout,
// and answers 200 {"status":"ready"} or 503 {"status":"not_ready"} with the
// per-check outcome.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var (
			mu     sync.Mutex
			result = readiness{Status: "ready", Checks: make(map[string]string, len(checks))}
		)

		g, ctx := errgroup.WithContext(r.Context())
		for _, c := range checks {
			g.Go(func() error {
				cctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				err := c.Fn(cctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Checks[c.Name] = "failed"
					log.WarnContext(r.Context(), "readiness check failed",
						logger.Component("httpserver"),
						slog.String("check", c.Name),
						logger.Error(err),
					)
					return nil
				}
				result.Checks[c.Name] = "ok"
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		for _, v := range result.Checks {
			if v != "ok" {
				result.Status = "not_ready"
				status = http.StatusServiceUnavailable
				break
			}
		}
		writeStatus(w, status, result)
	}
}

func writeStatus(w http.ResponseWriter, status int, body readiness) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
