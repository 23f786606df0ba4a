package binder

import "net/http"

// Query creates a binder for fields tagged `query:"name"`. Slices accept both
// repeated parameters and comma-separated values.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.URL.RawQuery == "" {
			return ErrBinderNotApplicable
		}
		q := r.URL.Query()
		return bindFields(v, "query", func(name string) []string {
			return q[name]
		}, ErrFailedToParseQuery)
	}
}
