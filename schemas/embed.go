// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the MySQL migrations for the draw history, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
