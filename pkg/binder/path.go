package binder

import "net/http"

// Path creates a binder for fields tagged `path:"name"`. The extractor
// returns the value of a named path parameter, e.g. chi.URLParam.
//
//	type ClinicRequest struct {
//		ID uuid.UUID `path:"id"`
//	}
//
//	r.Get("/clinics/{id}/summary", handler.Wrap(h,
//		handler.WithBinders[handler.Context, ClinicRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return ErrBinderNotApplicable
		}
		return bindFields(v, "path", func(name string) []string {
			if val := extractor(r, name); val != "" {
				return []string{val}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
