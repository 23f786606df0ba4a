// Package handler is a small typed HTTP handler layer for the dashboard API.
//
// A HandlerFunc receives a Context and a request struct populated by binders,
// and returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type ClinicRequest struct {
//		ID uuid.UUID `path:"id"`
//	}
//
//	r.Get("/clinics/{id}/summary", handler.Wrap(
//		func(ctx handler.Context, req ClinicRequest) handler.Response {
//			s, err := svc.Summary(ctx, req.ID)
//			if err != nil {
//				return handler.Error(err)
//			}
//			return handler.JSON(s)
//		},
//		handler.WithBinders[handler.Context, ClinicRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, ClinicRequest](handler.NewErrorHandler(log)),
//	))
//
// # Responses
//
//   - JSON wraps data in {"data": ...}; JSONError renders {"error": {...}}
//   - Empty and EmptyWithStatus write a status code only
//   - Error defers to the error handler
//   - SSE streams DataStar signal patches over Server-Sent Events
//
// # Errors
//
// HTTPError carries a status code and a stable key. Wrap a domain error with
// one to choose the status:
//
//	return handler.Error(fmt.Errorf("%w: %w", handler.ErrNotFound, reports.ErrClinicNotFound))
//
// NewErrorHandler logs every error with the request id and renders a JSON
// envelope, or an "error" signal for DataStar requests. Binding failures map
// to 400, deadline errors to 504 and everything else to 500. Errors caused by
// the client cancelling the request are logged at debug level and not rendered.
package handler
