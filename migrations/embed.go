// Package migrations embeds the PostgreSQL schema for the postgres storage driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
