// Package binder fills request structs from path and query parameters.
//
// Binders are plain functions of the form func(*http.Request, any) error and
// are applied by handler.Wrap in order. Only fields carrying the binder's tag
// are touched. Any type implementing encoding.TextUnmarshaler, such as
// uuid.UUID, is decoded through UnmarshalText.
//
// A binder returns ErrBinderNotApplicable when the request has nothing for it
// (for example Query on a request without a query string); handler.Wrap skips
// it. Parse failures wrap ErrFailedToParsePath or ErrFailedToParseQuery.
package binder
