package queue

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Schema changes ship as numbered .sql files; each runs once, tracked in
// schema_versions inside the same transaction so a crash mid-upgrade leaves
// the outcome database on the previous version.

//go:embed migrations/*.sql
var schemaFS embed.FS

const versionTable = `CREATE TABLE IF NOT EXISTS schema_versions (
    version TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
)`

func (s *Store) applyMigrations(ctx context.Context) error {
	names, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("enumerate schema files: %w", err)
	}
	sort.Strings(names)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, versionTable); err != nil {
		return fmt.Errorf("ensure schema_versions: %w", err)
	}

	for _, name := range names {
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")
		applied, err := versionApplied(ctx, tx, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		ddl, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read schema file %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(ddl)); err != nil {
			return fmt.Errorf("apply schema version %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_versions (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("record schema version %s: %w", version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema upgrade: %w", err)
	}
	return nil
}

func versionApplied(ctx context.Context, tx *sql.Tx, version string) (bool, error) {
	var one int
	row := tx.QueryRowContext(ctx, "SELECT 1 FROM schema_versions WHERE version = ?", version)
	switch err := row.Scan(&one); err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, fmt.Errorf("check schema version %s: %w", version, err)
	}
}
