package database

import _ "embed"

// Schema is the full SQL schema produced by applying every migration.
// Tests apply it directly instead of running migrations.
//
//go:embed sqlc/schema.sql
var Schema string
