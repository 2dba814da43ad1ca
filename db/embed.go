//go:build embed_migrations

package db

import "embed"

// Migrations holds the SQL migration files for embedded builds.
//
//go:embed migrations/*.sql
var Migrations embed.FS
