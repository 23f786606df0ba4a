package handler

import "net/http"

type errorResponse struct {
	err error
}

// Render writes nothing and hands the error to the Wrap error handler.
func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a Response that fails with err, so the configured error
// handler decides the status code and body. Wrap err with an HTTPError to
// pick the status:
//
//	return handler.Error(fmt.Errorf("%w: %w", handler.ErrNotFound, err))
func Error(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}
