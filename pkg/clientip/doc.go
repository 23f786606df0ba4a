// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// GetIP checks CF-Connecting-IP, X-Forwarded-For and X-Real-IP in that order
// and falls back to RemoteAddr. Invalid values are skipped. Middleware stores
// the result in the request context where FromContext, rate limiter keys and
// the logger extractor pick it up:
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
// Only deploy behind proxies that overwrite these headers; otherwise clients
// can choose their own address.
package clientip
