package service

import (
	"context"
	"sync"
	"time"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
)

type replanService struct {
	session *engine.Session
	client  backend.Client
	journal Journal
	now     func() time.Time

	mu    sync.Mutex
	draft contract.Draft
}

func NewReplanService(session *engine.Session, client backend.Client, j Journal) ReplanService {
	if j == nil {
		j = NoopJournal{}
	}
	return &replanService{
		session: session,
		client:  client,
		journal: j,
		now:     time.Now,
		draft:   contract.Draft{State: domain.DraftIdle},
	}
}

// Draft returns a copy of the current draft.
func (s *replanService) Draft() contract.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *replanService) setDraft(d contract.Draft) {
	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
}

// Simulate asks the replanning agent for a proposed plan and holds it as
// an unstaged draft. Nothing is persisted and the working stores are
// untouched. Re-simulating replaces an unstaged draft; a staged draft
// must be applied or discarded first.
func (s *replanService) Simulate(ctx context.Context) (*contract.SimulateResponse, error) {
	snap := s.session.Snapshot()
	if snap.Project.Finalized() {
		return nil, &contract.ReplanError{
			Code:    contract.ReplanErrFinalized,
			Message: "project is finalized; replanning is closed",
		}
	}
	if s.session.Staged() {
		return nil, &contract.ReplanError{
			Code:    contract.ReplanErrAlreadyStaged,
			Message: "a staged draft is pending; apply or discard it first",
		}
	}
	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.ReplanError{Code: contract.ReplanErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	s.setDraft(contract.Draft{State: domain.DraftSimulating})

	res, err := s.client.ReplanSimulate(ctx, s.session.ProjectID())
	if err != nil {
		s.setDraft(contract.Draft{State: domain.DraftIdle})
		return nil, &contract.ReplanError{Code: contract.ReplanErrBackend, Message: err.Error()}
	}

	tasks := make([]domain.Task, len(res.ProposedTasks))
	copy(tasks, res.ProposedTasks)
	for i := range tasks {
		tasks[i].EnsureID()
	}
	roster := rosterFromEntries(res.ProposedAssignments)

	s.setDraft(contract.Draft{
		State:          domain.DraftSimulated,
		Summary:        res.Summary,
		SimulatedAt:    s.now(),
		ProposedTasks:  tasks,
		ProposedRoster: roster,
	})

	journal(ctx, s.journal, s.session, "simulate",
		detailf("%d proposed tasks, %d proposed assignments", len(tasks), len(roster)))
	return &contract.SimulateResponse{
		Summary:        res.Summary,
		ProposedTasks:  tasks,
		ProposedRoster: roster,
	}, nil
}

// Stage swaps the simulated draft into the working stores as a preview.
// Sync installs are blocked until the draft is applied or discarded.
func (s *replanService) Stage(ctx context.Context) error {
	d := s.Draft()
	if d.State != domain.DraftSimulated {
		if d.State == domain.DraftStaged {
			return &contract.ReplanError{
				Code:    contract.ReplanErrAlreadyStaged,
				Message: "draft is already staged",
			}
		}
		return &contract.ReplanError{
			Code:    contract.ReplanErrNoDraft,
			Message: "no simulated draft; run simulate first",
		}
	}

	if err := s.session.Stage(d.ProposedTasks, d.ProposedRoster); err != nil {
		return &contract.ReplanError{Code: contract.ReplanErrAlreadyStaged, Message: err.Error()}
	}
	d.State = domain.DraftStaged
	s.setDraft(d)

	journal(ctx, s.journal, s.session, "stage", d.Summary)
	return nil
}

// Apply commits the staged draft to the backend. On failure the draft
// stays staged so the operator can retry or discard; nothing is rolled
// back locally. On success the staged state becomes the live working
// copy and an optimization event is recorded.
func (s *replanService) Apply(ctx context.Context) (*contract.ApplyResponse, error) {
	d := s.Draft()
	if d.State != domain.DraftStaged {
		return nil, &contract.ReplanError{
			Code:    contract.ReplanErrNotStaged,
			Message: "no staged draft to apply",
		}
	}
	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.ReplanError{Code: contract.ReplanErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	d.State = domain.DraftApplying
	s.setDraft(d)

	res, err := s.client.ReplanApply(ctx, s.session.ProjectID(), d.ProposedTasks, d.ProposedRoster)
	if err != nil {
		d.State = domain.DraftStaged
		s.setDraft(d)
		return nil, &contract.ReplanError{Code: contract.ReplanErrBackend, Message: err.Error()}
	}

	s.session.CommitStage()
	var cycle int
	_ = s.session.Edit(func(w *engine.Working) error {
		w.RecordOptimization(domain.OptimizationEvent{
			At:           s.now().UTC(),
			Summary:      d.Summary,
			TasksUpdated: res.TasksUpdated,
			TeamSize:     res.TeamSize,
		})
		cycle = w.Project().OptimizationCycle
		return nil
	})

	s.setDraft(contract.Draft{State: domain.DraftIdle})

	journal(ctx, s.journal, s.session, "apply",
		detailf("cycle %d: %s", cycle, d.Summary))
	return &contract.ApplyResponse{
		Message:           res.Message,
		NotificationsSent: res.NotificationsSent,
		TasksUpdated:      res.TasksUpdated,
		TeamSize:          res.TeamSize,
		Cycle:             cycle,
	}, nil
}

// Discard drops the draft. A staged draft is unwound to the exact
// pre-stage snapshot without refetching.
func (s *replanService) Discard(ctx context.Context) error {
	d := s.Draft()
	switch d.State {
	case domain.DraftStaged:
		s.session.DiscardStage()
	case domain.DraftSimulated:
		// nothing staged, just forget the proposal
	default:
		return &contract.ReplanError{
			Code:    contract.ReplanErrNoDraft,
			Message: "no draft to discard",
		}
	}
	s.setDraft(contract.Draft{State: domain.DraftIdle})

	journal(ctx, s.journal, s.session, "discard", d.Summary)
	return nil
}

func rosterFromEntries(entries []backend.MatchEntry) []domain.TeamMember {
	out := make([]domain.TeamMember, 0, len(entries))
	for _, e := range entries {
		a := e.Assignment
		out = append(out, domain.TeamMember{
			Profile:    e.Profile,
			Skills:     e.Skills,
			Assignment: &a,
		})
	}
	return out
}
