// Package migrations holds the SQL schema shared by the sqlite and postgres
// backends. Files follow the goose naming scheme and are applied in order.
package migrations

import "embed"

// FS contains every migration file at its root
//
//go:embed *.sql
var FS embed.FS
