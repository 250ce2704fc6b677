package service

import (
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
)

// Status builds the operator-facing view of a session.
func Status(session *engine.Session, draft domain.DraftState) contract.SessionStatus {
	snap := session.Snapshot()
	assigned := 0
	for _, m := range snap.Roster {
		if m.HasAssignment() {
			assigned++
		}
	}
	return contract.SessionStatus{
		ProjectID:    snap.Project.ID,
		Title:        snap.Project.Title,
		Status:       snap.Project.Status,
		Deadline:     snap.Project.Deadline,
		PoolSize:     len(snap.Pool),
		TeamSize:     len(snap.Roster),
		AssignedSize: assigned,
		DraftState:   draft,
		Cycle:        snap.Project.OptimizationCycle,
		SyncedAt:     snap.SyncedAt,
	}
}
