package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate applies every migrations/*.sql file in fsys that has not been applied yet,
// in file name order, and returns the versions it applied.
// MySQL commits DDL implicitly, so a migration and its schema_migrations row are not atomic.
// Migrations must be safe to run twice, e.g. CREATE TABLE IF NOT EXISTS.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(schema_migrations) > %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob > %w", err)
	}
	slices.Sort(files)

	var versions []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		if slices.Contains(applied, version) {
			continue
		}

		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return versions, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(contents)); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("tx.ExecContext(insert %s) > %w", version, err)
			}
			return nil
		}); err != nil {
			return versions, err
		}

		slog.Default().Info("applied a migration", "version", version)
		versions = append(versions, version)
	}
	return versions, nil
}
