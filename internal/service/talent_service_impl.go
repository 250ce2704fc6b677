package service

import (
	"context"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/ident"
)

type talentService struct {
	session *engine.Session
	client  backend.Client
	journal Journal
}

func NewTalentService(session *engine.Session, client backend.Client, j Journal) TalentService {
	if j == nil {
		j = NoopJournal{}
	}
	return &talentService{session: session, client: client, journal: j}
}

// Available returns the employee directory minus everyone already on the
// roster, compared by normalized identity.
func (s *talentService) Available(ctx context.Context) ([]contract.Candidate, error) {
	employees, err := s.client.FetchDirectory(ctx)
	if err != nil {
		return nil, &contract.TalentError{Code: contract.TalentErrBackend, Message: err.Error()}
	}

	snap := s.session.Snapshot()
	var out []contract.Candidate
	for _, e := range employees {
		rostered := false
		for _, m := range snap.Roster {
			if ident.Equal(m.Profile.ID.String(), e.Profile.ID.String()) {
				rostered = true
				break
			}
		}
		if !rostered {
			out = append(out, contract.Candidate{Profile: e.Profile, Skills: e.Skills})
		}
	}
	return out, nil
}

// Hire adds a directory candidate to the roster as an inert member and
// persists the new team composition. A duplicate hire is a no-op, not an
// error. On persist failure the roster change is rolled back.
func (s *talentService) Hire(ctx context.Context, candidateID ident.ID) (*contract.HireResponse, error) {
	snap := s.session.Snapshot()
	if snap.Project.Finalized() {
		return nil, &contract.TalentError{
			Code:    contract.TalentErrFinalized,
			Message: "project is finalized; the roster is closed",
		}
	}
	if s.session.Staged() {
		return nil, &contract.TalentError{
			Code:    contract.TalentErrStagedDraft,
			Message: "a staged draft is pending; apply or discard it first",
		}
	}

	employees, err := s.client.FetchDirectory(ctx)
	if err != nil {
		return nil, &contract.TalentError{Code: contract.TalentErrBackend, Message: err.Error()}
	}
	var candidate *backend.Employee
	for i, e := range employees {
		if ident.Equal(e.Profile.ID.String(), candidateID.String()) {
			candidate = &employees[i]
			break
		}
	}
	if candidate == nil {
		return nil, &contract.TalentError{
			Code:    contract.TalentErrNotFound,
			Message: "no such candidate in the directory: " + candidateID.String(),
		}
	}

	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.TalentError{Code: contract.TalentErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	before := s.session.Snapshot()

	added := false
	_ = s.session.Edit(func(w *engine.Working) error {
		added = w.AddMember(candidate.Profile, candidate.Skills)
		return nil
	})

	snap = s.session.Snapshot()
	if !added {
		return &contract.HireResponse{Added: false, TeamSize: len(snap.Roster)}, nil
	}

	if err := s.persistTeam(ctx, snap); err != nil {
		s.session.Restore(before)
		return nil, &contract.TalentError{Code: contract.TalentErrBackend, Message: err.Error()}
	}

	journal(ctx, s.journal, s.session, "hire", candidate.Profile.DisplayName())
	return &contract.HireResponse{
		Added:    true,
		Member:   domain.TeamMember{Profile: candidate.Profile, Skills: candidate.Skills},
		TeamSize: len(snap.Roster),
	}, nil
}

// Release removes a member from the roster, returning their assigned task
// to the pool, and persists the new team composition. On persist failure
// both stores are rolled back.
func (s *talentService) Release(ctx context.Context, memberID ident.ID) (*contract.ReleaseResponse, error) {
	if s.session.Staged() {
		return nil, &contract.TalentError{
			Code:    contract.TalentErrStagedDraft,
			Message: "a staged draft is pending; apply or discard it first",
		}
	}
	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.TalentError{Code: contract.TalentErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	before := s.session.Snapshot()

	var returned ident.ID
	editErr := s.session.Edit(func(w *engine.Working) error {
		assignment, err := w.RemoveMember(memberID)
		if err != nil {
			return err
		}
		if assignment != nil && assignment.TaskTitle != "" {
			t := domain.Task{
				ID:             assignment.TaskID,
				Title:          assignment.TaskTitle,
				Description:    assignment.Description,
				EstimatedHours: assignment.SuggestedHours,
				Deadline:       assignment.Deadline,
				Status:         domain.TaskBacklog,
				Priority:       domain.PriorityMedium,
			}
			t.EnsureID()
			w.AppendTask(t)
			returned = t.ID
		}
		return nil
	})
	if editErr != nil {
		return nil, &contract.TalentError{Code: contract.TalentErrNotFound, Message: editErr.Error()}
	}

	snap := s.session.Snapshot()
	if err := s.persistTeam(ctx, snap); err != nil {
		s.session.Restore(before)
		return nil, &contract.TalentError{Code: contract.TalentErrBackend, Message: err.Error()}
	}

	journal(ctx, s.journal, s.session, "release", memberID.String())
	return &contract.ReleaseResponse{
		ReturnedTaskID: returned,
		TeamSize:       len(snap.Roster),
	}, nil
}

func (s *talentService) persistTeam(ctx context.Context, snap engine.Snapshot) error {
	team := make([]ident.ID, 0, len(snap.Roster))
	for _, m := range snap.Roster {
		team = append(team, m.Profile.ID)
	}
	_, err := s.client.UpdateProject(ctx, s.session.ProjectID(), backend.ProjectPatch{
		AssignedTeam: team,
	})
	return err
}
