package migrations

import "embed"

// FS contains embedded SQLite migrations for reservations storage.
//
//go:embed *.sql
var FS embed.FS
