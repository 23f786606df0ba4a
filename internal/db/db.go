// Package db holds the embedded SQL migrations for the reporting schema.
package db

import "embed"

// Migrations contains the goose migrations under the "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS
