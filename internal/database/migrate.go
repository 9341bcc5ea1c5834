package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is a forward-only schema change identified by version.
type Migration struct {
	Version     int
	Description string
	File        string
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Version     int
	Description string
	AppliedAt   string
}

// Migrations lists every schema change in the order it must be applied.
var Migrations = []Migration{
	{Version: 1, Description: "create initial tables", File: "migrations/001_initial.sql"},
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at TEXT NOT NULL
)`

// migrate applies each migration whose version is not yet recorded. Every
// migration runs in its own transaction together with its bookkeeping row, so
// a version is either fully applied and recorded or not at all.
func (d *Database) migrate(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, createMigrationsTable); err != nil {
		return wrapErr(EntityMigration, "prepare", "", err)
	}
	for _, m := range Migrations {
		applied, err := d.migrationApplied(ctx, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := d.applyMigration(ctx, m); err != nil {
			return err
		}
		d.log.Info().Int("version", m.Version).Str("description", m.Description).Msg("migration applied")
	}
	return nil
}

func (d *Database) migrationApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := d.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	if err != nil {
		return false, wrapErr(EntityMigration, "check", fmt.Sprint(version), err)
	}
	return count > 0, nil
}

func (d *Database) applyMigration(ctx context.Context, m Migration) error {
	body, err := migrationFS.ReadFile(m.File)
	if err != nil {
		return wrapErr(EntityMigration, "read", fmt.Sprint(m.Version), err)
	}
	err = d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, d.timestamp())
		return err
	})
	return wrapErr(EntityMigration, "apply", fmt.Sprint(m.Version), err)
}

// AppliedMigrations returns the recorded migrations ordered by version.
func (d *Database) AppliedMigrations(ctx context.Context) ([]AppliedMigration, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]AppliedMigration, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT version, description, applied_at FROM schema_migrations ORDER BY version ASC")
		if err != nil {
			return nil, wrapErr(EntityMigration, "list", "", err)
		}
		defer rows.Close()

		var out []AppliedMigration
		for rows.Next() {
			var m AppliedMigration
			if err := rows.Scan(&m.Version, &m.Description, &m.AppliedAt); err != nil {
				return nil, wrapErr(EntityMigration, "list", "", err)
			}
			out = append(out, m)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityMigration, "list", "", err)
		}
		return out, nil
	})
}
