package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/clinicdash/pkg/binder"
	"github.com/dmitrymomot/clinicdash/pkg/logger"
	"github.com/dmitrymomot/clinicdash/pkg/requestid"
)

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Code       string
	LogLevel   slog.Level
	Silent     bool // client went away, nothing to render
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// ClassifyError maps an error to the response status and code.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Code:       ErrInternalServerError.Key,
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
	case errors.Is(err, binder.ErrFailedToParsePath), errors.Is(err, binder.ErrFailedToParseQuery):
		info.StatusCode = ErrBadRequest.Code
		info.Code = ErrBadRequest.Key
	case errors.Is(err, context.DeadlineExceeded):
		info.StatusCode = ErrGatewayTimeout.Code
		info.Code = ErrGatewayTimeout.Key
	case errors.Is(err, context.Canceled):
		info.Silent = true
		info.LogLevel = slog.LevelDebug
		return info
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// NewErrorHandler creates the default error handler. Regular requests get a
// JSON error envelope; DataStar requests get an "error" signal patch.
// Configure it once in main and pass it to every Wrap call.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(r.Context())
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if info.Silent {
			return
		}

		detail := ErrorDetail{
			Code:      info.Code,
			Message:   http.StatusText(info.StatusCode),
			RequestID: requestID,
		}

		if sse := ctx.SSE(); sse != nil {
			data, mErr := json.Marshal(map[string]any{"error": detail})
			if mErr == nil {
				mErr = sse.PatchSignals(data)
			}
			if mErr != nil {
				log.Error("failed to send error signal",
					logger.RequestID(requestID),
					logger.Error(mErr),
					logger.Event("render_error_signal"),
				)
			}
			return
		}

		resp := JSON(JSONResponse{Error: &detail}, WithJSONStatus(info.StatusCode))
		if rErr := resp.Render(ctx.ResponseWriter(), r); rErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestID),
				logger.Error(rErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
