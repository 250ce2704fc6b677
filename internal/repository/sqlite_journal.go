package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lvoisin/crewctl/internal/db"
	"github.com/lvoisin/crewctl/internal/service"
)

// SQLiteJournalRepo implements JournalRepo using a SQLite database.
type SQLiteJournalRepo struct {
	db db.DBTX
}

// NewSQLiteJournalRepo creates a new SQLiteJournalRepo.
func NewSQLiteJournalRepo(dbtx db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: dbtx}
}

func (r *SQLiteJournalRepo) Record(ctx context.Context, e service.JournalEntry) error {
	query := `INSERT INTO journal_entries (id, project_id, action, detail, at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Action,
		e.Detail,
		e.At.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepo) ListRecent(ctx context.Context, limit int) ([]service.JournalEntry, error) {
	query := `SELECT id, project_id, action, detail, at
		FROM journal_entries ORDER BY at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteJournalRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]service.JournalEntry, error) {
	query := `SELECT id, project_id, action, detail, at
		FROM journal_entries WHERE project_id = ? ORDER BY at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries by project: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// Prune keeps the newest entries and deletes the rest.
func (r *SQLiteJournalRepo) Prune(ctx context.Context, keep int) error {
	query := `DELETE FROM journal_entries WHERE id NOT IN (
		SELECT id FROM journal_entries ORDER BY at DESC, id LIMIT ?)`
	_, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return fmt.Errorf("pruning journal entries: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepo) scanEntries(rows *sql.Rows) ([]service.JournalEntry, error) {
	var out []service.JournalEntry
	for rows.Next() {
		var e service.JournalEntry
		var at string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Action, &e.Detail, &at); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parsing journal timestamp: %w", err)
		}
		e.At = parsed
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}
	return out, nil
}
