// Package migrations contains embedded SQL migrations for the craps SQLite store.
package migrations

import "embed"

// FS contains embedded SQLite migrations for craps storage.
//
//go:embed *.sql
var FS embed.FS
