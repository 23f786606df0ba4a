package binder

import "errors"

// Common binding errors
var (
	// ErrBinderNotApplicable is returned when a binder has nothing to bind for a request.
	// handler.Wrap skips such binders.
	ErrBinderNotApplicable = errors.New("binder not applicable")
	ErrFailedToParseQuery  = errors.New("failed to parse query parameters")
	ErrFailedToParsePath   = errors.New("failed to parse path parameters")
)
