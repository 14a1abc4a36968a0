package migrations

import "embed"

// FS holds the versioned schema, one directory per database dialect.
//
//go:embed mysql/*.sql
var FS embed.FS
