package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
)

type distributionService struct {
	session *engine.Session
	client  backend.Client
	journal Journal
}

func NewDistributionService(session *engine.Session, client backend.Client, j Journal) DistributionService {
	if j == nil {
		j = NoopJournal{}
	}
	return &distributionService{session: session, client: client, journal: j}
}

// Distribute calls the matching agent and reconciles accepted candidates
// into the roster, removing their suggested tasks from the pool. On any
// backend failure both stores are left untouched. Preview mode runs the
// match without mutating anything.
func (s *distributionService) Distribute(ctx context.Context, req contract.DistributeRequest) (*contract.DistributeResponse, error) {
	snap := s.session.Snapshot()
	if snap.Project.Finalized() {
		return nil, &contract.DistributeError{
			Code:    contract.DistributeErrFinalized,
			Message: "project is finalized; distribution is closed",
		}
	}
	if !req.Preview {
		if s.session.Staged() {
			return nil, &contract.DistributeError{
				Code:    contract.DistributeErrStagedDraft,
				Message: "a staged draft is pending; apply or discard it first",
			}
		}
		if len(snap.Pool) == 0 {
			return nil, &contract.DistributeError{
				Code:    contract.DistributeErrEmptyPool,
				Message: "no unassigned tasks to distribute",
			}
		}
		if err := s.session.BeginOp(); err != nil {
			return nil, &contract.DistributeError{
				Code:    contract.DistributeErrOpInFlight,
				Message: err.Error(),
			}
		}
		defer s.session.EndOp()
	}

	entries, err := s.client.Match(ctx, s.session.ProjectID(), req.TeamSize)
	if err != nil {
		return nil, distributeBackendErr(err)
	}

	resp := &contract.DistributeResponse{}
	var accepted []backend.MatchEntry
	for _, e := range entries {
		if e.Score <= 0 {
			resp.Skipped = append(resp.Skipped, contract.SkippedCandidate{
				Name:   e.Profile.DisplayName(),
				Reason: fmt.Sprintf("non-positive score %.1f", e.Score),
			})
			continue
		}
		if e.Profile.ID.IsZero() {
			resp.Skipped = append(resp.Skipped, contract.SkippedCandidate{
				Name:   e.Profile.DisplayName(),
				Reason: "match entry carries no candidate id",
			})
			continue
		}
		accepted = append(accepted, e)
	}

	if len(accepted) == 0 {
		return nil, &contract.DistributeError{
			Code:    contract.DistributeErrNoCandidates,
			Message: "matching returned no usable candidates",
		}
	}

	if req.Preview {
		for _, e := range accepted {
			resp.Hired = append(resp.Hired, hiredFromEntry(e, false))
		}
		resp.PoolRemaining = len(snap.Pool)
		return resp, nil
	}

	// Single edit so a failure before this point leaves both stores
	// untouched.
	err = s.session.Edit(func(w *engine.Working) error {
		for _, e := range accepted {
			a := e.Assignment
			member := domain.TeamMember{
				Profile:    e.Profile,
				Skills:     e.Skills,
				Assignment: &a,
			}
			if !w.AddMember(member.Profile, member.Skills) {
				resp.Skipped = append(resp.Skipped, contract.SkippedCandidate{
					Name:   e.Profile.DisplayName(),
					Reason: "already on the roster",
				})
				continue
			}
			// AddMember inserts an inert entry; attach the assignment to
			// the freshly added member.
			members := w.Roster()
			members[len(members)-1].Assignment = &a

			removed := false
			if !a.TaskID.IsZero() {
				removed = w.RemoveTaskByID(a.TaskID)
			}
			if !removed && a.TaskTitle != "" {
				removed = w.RemoveTaskByTitle(a.TaskTitle)
			}
			resp.Hired = append(resp.Hired, hiredFromEntry(e, removed))
		}
		resp.PoolRemaining = len(w.Pool())
		return nil
	})
	if err != nil {
		return nil, err
	}

	journal(ctx, s.journal, s.session, "distribute",
		detailf("hired %d, skipped %d", len(resp.Hired), len(resp.Skipped)))
	return resp, nil
}

func hiredFromEntry(e backend.MatchEntry, poolRemoved bool) contract.HiredCandidate {
	a := e.Assignment
	return contract.HiredCandidate{
		Member: domain.TeamMember{
			Profile:    e.Profile,
			Skills:     e.Skills,
			Assignment: &a,
		},
		Score:           e.Score,
		Reasoning:       a.Reasoning,
		MatchedSkills:   e.MatchedSkills,
		PoolTaskRemoved: poolRemoved,
	}
}

func distributeBackendErr(err error) error {
	code := contract.DistributeErrBackend
	if errors.Is(err, backend.ErrNotFound) {
		code = contract.DistributeErrNoCandidates
	}
	return &contract.DistributeError{Code: code, Message: err.Error()}
}
