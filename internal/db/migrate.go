package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL DEFAULT '',
		action     TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_journal_project ON journal_entries(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_at ON journal_entries(at)`,
}
