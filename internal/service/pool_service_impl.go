package service

import (
	"context"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
)

type poolService struct {
	session *engine.Session
	client  backend.Client
	journal Journal
}

func NewPoolService(session *engine.Session, client backend.Client, j Journal) PoolService {
	if j == nil {
		j = NoopJournal{}
	}
	return &poolService{session: session, client: client, journal: j}
}

// Decompose asks the planner agent to break the project down and replaces
// the pool with the returned tasks. The previous pool is kept untouched
// when the agent call fails.
func (s *poolService) Decompose(ctx context.Context) (*backend.DecomposeResult, error) {
	if s.session.Staged() {
		return nil, &contract.DistributeError{
			Code:    contract.DistributeErrStagedDraft,
			Message: "a staged draft is pending; apply or discard it first",
		}
	}
	if err := s.session.BeginOp(); err != nil {
		return nil, &contract.DistributeError{Code: contract.DistributeErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	res, err := s.client.Decompose(ctx, s.session.ProjectID())
	if err != nil {
		return nil, &contract.DistributeError{Code: contract.DistributeErrBackend, Message: err.Error()}
	}

	before := s.session.Snapshot()
	_ = s.session.Edit(func(w *engine.Working) error {
		w.ReplaceAllTasks(res.Tasks)
		return nil
	})
	if err := s.persistTasks(ctx); err != nil {
		s.session.Restore(before)
		return nil, err
	}

	journal(ctx, s.journal, s.session, "decompose",
		detailf("%d tasks, recommended team of %d", len(res.Tasks), res.RecommendedTeamSize))
	return res, nil
}

// AddTask appends a manual task to the pool and persists the task list.
func (s *poolService) AddTask(ctx context.Context, t domain.Task) error {
	if err := s.session.BeginOp(); err != nil {
		return &contract.DistributeError{Code: contract.DistributeErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	before := s.session.Snapshot()
	err := s.session.Edit(func(w *engine.Working) error {
		w.AppendTask(t)
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.persistTasks(ctx); err != nil {
		s.session.Restore(before)
		return err
	}
	journal(ctx, s.journal, s.session, "pool_add", t.Title)
	return nil
}

// RemoveTask drops the pool task at index and persists the task list.
func (s *poolService) RemoveTask(ctx context.Context, index int) error {
	if err := s.session.BeginOp(); err != nil {
		return &contract.DistributeError{Code: contract.DistributeErrOpInFlight, Message: err.Error()}
	}
	defer s.session.EndOp()

	before := s.session.Snapshot()
	err := s.session.Edit(func(w *engine.Working) error {
		return w.RemoveTask(index)
	})
	if err != nil {
		return err
	}
	if err := s.persistTasks(ctx); err != nil {
		s.session.Restore(before)
		return err
	}
	journal(ctx, s.journal, s.session, "pool_remove", detailf("index %d", index))
	return nil
}

// persistTasks PUTs the flattened working task list. The backend contract
// is whole-document replace, so the pool and the rostered assignments are
// written together.
func (s *poolService) persistTasks(ctx context.Context) error {
	snap := s.session.Snapshot()
	_, err := s.client.UpdateProject(ctx, s.session.ProjectID(), backend.ProjectPatch{
		Tasks: finalTasks(snap),
	})
	if err != nil {
		return &contract.DistributeError{Code: contract.DistributeErrBackend, Message: err.Error()}
	}
	return nil
}
