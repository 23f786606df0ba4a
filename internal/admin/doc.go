// Package admin is the HTTP API of the clinic dashboard: clinic reports plus
// inspection and invalidation of the report cache.
//
// All JSON responses use the handler envelope ({"data": ...} or
// {"error": {...}}). The stats stream at /cache/stats/stream speaks DataStar
// Server-Sent Events and patches a "cache" signal with the latest snapshot.
package admin
