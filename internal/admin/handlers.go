package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrymomot/clinicdash/handler"
	"github.com/dmitrymomot/clinicdash/internal/reports"
	"github.com/dmitrymomot/clinicdash/pkg/cache"
	"github.com/dmitrymomot/clinicdash/pkg/logger"
	"github.com/dmitrymomot/clinicdash/pkg/pg"
)

var (
	errMissingPattern = handler.NewHTTPError(http.StatusBadRequest, "missing_pattern")
	errInvalidPattern = handler.NewHTTPError(http.StatusBadRequest, "invalid_pattern")
	errKeyNotFound    = handler.NewHTTPError(http.StatusNotFound, "key_not_found")
	errClinicNotFound = handler.NewHTTPError(http.StatusNotFound, "clinic_not_found")
)

type handlers struct {
	reports Reports
	cache   Cache
	cfg     Config
	log     *slog.Logger
}

// reportError maps report failures to HTTP errors.
func reportError(err error) handler.Response {
	switch {
	case errors.Is(err, reports.ErrClinicNotFound):
		return handler.Error(fmt.Errorf("%w: %w", errClinicNotFound, err))
	case errors.Is(err, cache.ErrFetchTimeout), pg.IsQueryCanceled(err):
		return handler.Error(fmt.Errorf("%w: %w", handler.ErrGatewayTimeout, err))
	default:
		return handler.Error(err)
	}
}

func (h *handlers) listClinics(ctx handler.Context, _ struct{}) handler.Response {
	clinics, err := h.reports.Clinics(ctx)
	if err != nil {
		return reportError(err)
	}
	return handler.JSON(clinics, handler.WithJSONMeta(map[string]any{"count": len(clinics)}))
}

func (h *handlers) ranking(ctx handler.Context, _ struct{}) handler.Response {
	ranked, err := h.reports.Ranking(ctx)
	if err != nil {
		return reportError(err)
	}
	return handler.JSON(ranked)
}

func (h *handlers) summary(ctx handler.Context, req clinicRequest) handler.Response {
	s, err := h.reports.Summary(ctx, req.ID)
	if err != nil {
		return reportError(err)
	}
	return handler.JSON(s)
}

func (h *handlers) invalidateClinic(ctx handler.Context, req clinicRequest) handler.Response {
	n := h.reports.InvalidateClinic(req.ID)
	h.log.InfoContext(ctx, "clinic cache invalidated",
		logger.ClinicID(req.ID),
		slog.Int("removed", n),
	)
	return handler.JSON(removedResponse{Removed: n})
}

func (h *handlers) stats(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(h.cache.Stats())
}

// statsStream pushes a stats snapshot as DataStar signals every interval
// until the client disconnects.
func (h *handlers) statsStream(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		ticker := time.NewTicker(h.cfg.StatsInterval)
		defer ticker.Stop()

		for {
			if err := stream.SendSignals(statsSignals(h.cache.Stats())); err != nil {
				return err
			}
			select {
			case <-stream.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func statsSignals(s cache.Stats) map[string]any {
	return map[string]any{
		"cache": map[string]any{
			"hits":        s.Hits,
			"misses":      s.Misses,
			"evictions":   s.Evictions,
			"expirations": s.Expirations,
			"size":        s.Size,
			"maxSize":     s.MaxSize,
			"inFlight":    s.InFlight,
			"hitRate":     s.HitRate,
		},
	}
}

func (h *handlers) listKeys(_ handler.Context, _ struct{}) handler.Response {
	keys := h.cache.Keys()
	infos := make([]cache.EntryInfo, 0, len(keys))
	for _, k := range keys {
		if info, ok := h.cache.Inspect(k); ok {
			infos = append(infos, info)
		}
	}
	return handler.JSON(infos, handler.WithJSONMeta(map[string]any{"count": len(infos)}))
}

func (h *handlers) inspectKey(_ handler.Context, req keyRequest) handler.Response {
	info, ok := h.cache.Inspect(req.Key)
	if !ok {
		return handler.Error(errKeyNotFound)
	}
	return handler.JSON(info)
}

func (h *handlers) deleteKey(ctx handler.Context, req keyRequest) handler.Response {
	h.cache.Invalidate(req.Key)
	h.log.InfoContext(ctx, "cache key invalidated", logger.CacheKey(req.Key))
	return handler.Empty()
}

func (h *handlers) deletePattern(ctx handler.Context, req patternRequest) handler.Response {
	if req.Pattern == "" {
		return handler.Error(errMissingPattern)
	}
	re, err := regexp.Compile(req.Pattern)
	if err != nil {
		return handler.Error(fmt.Errorf("%w: %w", errInvalidPattern, err))
	}

	n := h.cache.InvalidatePattern(cache.MatchRegexp(re))
	h.log.InfoContext(ctx, "cache pattern invalidated",
		logger.Pattern(req.Pattern),
		slog.Int("removed", n),
	)
	return handler.JSON(removedResponse{Removed: n})
}

func (h *handlers) clear(ctx handler.Context, _ struct{}) handler.Response {
	h.cache.Clear()
	h.log.InfoContext(ctx, "cache cleared")
	return handler.Empty()
}

// warmUp preloads the reports. Without wait=true it runs in the background
// and answers 202 immediately.
func (h *handlers) warmUp(ctx handler.Context, req warmUpRequest) handler.Response {
	if req.Wait {
		return handler.JSON(h.reports.WarmUp(ctx))
	}

	bg := context.WithoutCancel(ctx)
	go h.reports.WarmUp(bg)
	return handler.EmptyWithStatus(http.StatusAccepted)
}
