// Package repository persists the local operator journal.
package repository

import (
	"context"

	"github.com/lvoisin/crewctl/internal/service"
)

type JournalRepo interface {
	service.Journal
	ListRecent(ctx context.Context, limit int) ([]service.JournalEntry, error)
	ListByProject(ctx context.Context, projectID string, limit int) ([]service.JournalEntry, error)
	Prune(ctx context.Context, keep int) error
}
