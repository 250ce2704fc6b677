package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lvoisin/crewctl/internal/engine"
)

// journal records an operator action, swallowing failures. The journal is
// advisory; losing an entry must never fail the operation it describes.
func journal(ctx context.Context, j Journal, session *engine.Session, action, detail string) {
	if j == nil {
		return
	}
	projectID := ""
	if session != nil {
		projectID = session.ProjectID().String()
	}
	_ = j.Record(ctx, JournalEntry{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Action:    action,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}

func detailf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
