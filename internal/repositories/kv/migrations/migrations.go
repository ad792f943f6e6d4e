// Package migrations embeds the goose schema migrations of the key-value
// store, one directory per SQL dialect.
package migrations

import "embed"

// Migrations holds sqlite/*.sql and postgres/*.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Directory names inside Migrations.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
