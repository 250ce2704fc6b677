package service

import (
	"context"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/ident"
)

type finalizeService struct {
	session *engine.Session
	client  backend.Client
	journal Journal
}

func NewFinalizeService(session *engine.Session, client backend.Client, j Journal) FinalizeService {
	if j == nil {
		j = NoopJournal{}
	}
	return &finalizeService{session: session, client: client, journal: j}
}

// Finalize persists the working stores as the project's committed plan.
// The stored task list becomes: every pool task with its assignee cleared,
// plus one task per rostered member synthesized from the member's
// assignment. The project status flips to finalized and the roster ids
// become the assigned team.
func (s *finalizeService) Finalize(ctx context.Context) (*contract.FinalizeResponse, error) {
	if s.session.Staged() {
		return nil, &contract.FinalizeError{
			Code:    contract.FinalizeErrStagedDraft,
			Message: "a staged draft is pending; apply or discard it first",
		}
	}

	snap := s.session.Snapshot()
	if snap.Project.Finalized() {
		return nil, &contract.FinalizeError{
			Code:    contract.FinalizeErrAlreadyFinalized,
			Message: "project is already finalized",
		}
	}
	if len(snap.Roster) == 0 {
		return nil, &contract.FinalizeError{
			Code:    contract.FinalizeErrEmptyRoster,
			Message: "cannot finalize with an empty roster",
		}
	}

	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.FinalizeError{Code: contract.FinalizeErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	tasks := finalTasks(snap)
	team := make([]ident.ID, 0, len(snap.Roster))
	for _, m := range snap.Roster {
		team = append(team, m.Profile.ID)
	}

	status := domain.ProjectFinalized
	project, err := s.client.UpdateProject(ctx, s.session.ProjectID(), backend.ProjectPatch{
		Status:            &status,
		AssignedTeam:      team,
		Tasks:             tasks,
		OptimizationLog:   snap.Project.OptimizationLog,
		OptimizationCycle: &snap.Project.OptimizationCycle,
	})
	if err != nil {
		return nil, &contract.FinalizeError{Code: contract.FinalizeErrBackend, Message: err.Error()}
	}

	s.session.Seed(&backend.ProjectSnapshot{Project: *project, Team: snap.Roster})

	journal(ctx, s.journal, s.session, "finalize",
		detailf("%d tasks, team of %d", len(tasks), len(team)))
	return &contract.FinalizeResponse{
		ProjectID:    project.ID,
		TeamSize:     len(team),
		TasksWritten: len(tasks),
	}, nil
}

// finalTasks flattens the working stores into the stored task list.
func finalTasks(snap engine.Snapshot) []domain.Task {
	var out []domain.Task
	for _, t := range snap.Pool {
		t.AssignedTo = ""
		out = append(out, t)
	}
	for _, m := range snap.Roster {
		if m.Assignment == nil {
			continue
		}
		a := m.Assignment
		t := domain.Task{
			ID:             a.TaskID,
			Title:          a.TaskTitle,
			Description:    a.Description,
			EstimatedHours: a.SuggestedHours,
			Deadline:       a.Deadline,
			Status:         domain.TaskBacklog,
			Priority:       domain.PriorityMedium,
			AssignedTo:     m.Profile.ID,
		}
		t.EnsureID()
		out = append(out, t)
	}
	return out
}
