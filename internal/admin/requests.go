package admin

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type clinicRequest struct {
	ID uuid.UUID `path:"id"`
}

type keyRequest struct {
	Key string `path:"key"`
}

type patternRequest struct {
	Pattern string `query:"pattern"`
}

type warmUpRequest struct {
	Wait bool `query:"wait"`
}

type removedResponse struct {
	Removed int `json:"removed"`
}

// urlParam returns an unescaped chi path parameter, so cache keys may carry
// escaped slashes.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
