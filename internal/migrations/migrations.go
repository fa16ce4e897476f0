// Package migrations applies the mapping database schema.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// legacyColumns were added to the mappings table after its first release.
// Databases created before then are patched in place before goose runs.
var legacyColumns = []string{"metadata_status", "metadata_info"}

// Run brings db up to the latest schema.
func Run(db *sql.DB) error {
	if err := adoptLegacy(db); err != nil {
		return fmt.Errorf("adopt legacy schema: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}

// adoptLegacy adds columns missing from a mappings table that predates them.
// A database without the table is left for the first migration to create.
func adoptLegacy(db *sql.DB) error {
	cols, err := tableColumns(db, "mappings")
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}

	for _, col := range legacyColumns {
		if cols[col] {
			continue
		}
		if _, err := db.Exec("ALTER TABLE mappings ADD COLUMN " + col + " TEXT"); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
