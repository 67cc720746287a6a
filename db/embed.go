// Package db carries the versioned SQL migrations, one directory per driver.
package db

import "embed"

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var Migrations embed.FS
