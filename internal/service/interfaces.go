package service

import (
	"context"
	"time"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// DistributionService runs the AI matching agent against the current task
// pool and reconciles the results into the working stores.
type DistributionService interface {
	Distribute(ctx context.Context, req contract.DistributeRequest) (*contract.DistributeResponse, error)
}

// ReplanService drives the replan draft state machine:
// idle -> simulating -> simulated -> staged -> (applying -> applied) | discarded.
// At most one outstanding draft per session.
type ReplanService interface {
	Simulate(ctx context.Context) (*contract.SimulateResponse, error)
	Stage(ctx context.Context) error
	Apply(ctx context.Context) (*contract.ApplyResponse, error)
	Discard(ctx context.Context) error
	Draft() contract.Draft
}

// FinalizeService commits the working stores back to the backend.
type FinalizeService interface {
	Finalize(ctx context.Context) (*contract.FinalizeResponse, error)
}

// TalentService manages manual roster changes against the employee
// directory.
type TalentService interface {
	Available(ctx context.Context) ([]contract.Candidate, error)
	Hire(ctx context.Context, candidateID ident.ID) (*contract.HireResponse, error)
	Release(ctx context.Context, memberID ident.ID) (*contract.ReleaseResponse, error)
}

// ProjectService covers project lifecycle operations that do not need an
// open session.
type ProjectService interface {
	Create(ctx context.Context, req backend.ProjectCreate) (*domain.Project, error)
	List(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	MatchPreview(ctx context.Context, req backend.MatchPreviewRequest) ([]backend.MatchEntry, error)
}

// PoolService mutates the task pool of an open session.
type PoolService interface {
	Decompose(ctx context.Context) (*backend.DecomposeResult, error)
	AddTask(ctx context.Context, t domain.Task) error
	RemoveTask(ctx context.Context, index int) error
}

// JournalEntry is one recorded operator action.
type JournalEntry struct {
	ID        string
	ProjectID string
	Action    string
	Detail    string
	At        time.Time
}

// Journal persists operator actions locally. Implementations are
// advisory: services swallow journal errors, an operation never fails
// because its journal write did.
type Journal interface {
	Record(ctx context.Context, e JournalEntry) error
}

// NoopJournal discards every entry.
type NoopJournal struct{}

func (NoopJournal) Record(ctx context.Context, e JournalEntry) error { return nil }
