package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// ErrFakeUnconfigured is returned for calls the test did not stub.
var ErrFakeUnconfigured = errors.New("fake backend: call not configured")

// FakeBackend implements backend.Client with overridable function fields.
// Unset calls fail loudly so a test never silently exercises an
// unintended path.
type FakeBackend struct {
	FetchProjectFn   func(ctx context.Context, id ident.ID) (*backend.ProjectSnapshot, error)
	CreateProjectFn  func(ctx context.Context, req backend.ProjectCreate) (*domain.Project, error)
	ListProjectsFn   func(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	UpdateProjectFn  func(ctx context.Context, id ident.ID, patch backend.ProjectPatch) (*domain.Project, error)
	DecomposeFn      func(ctx context.Context, id ident.ID) (*backend.DecomposeResult, error)
	MatchFn          func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error)
	MatchPreviewFn   func(ctx context.Context, req backend.MatchPreviewRequest) ([]backend.MatchEntry, error)
	ReplanSimulateFn func(ctx context.Context, id ident.ID) (*backend.SimulateResult, error)
	ReplanApplyFn    func(ctx context.Context, id ident.ID, tasks []domain.Task, roster []domain.TeamMember) (*backend.ApplyResult, error)
	FetchHealthFn    func(ctx context.Context, id ident.ID) (*backend.HealthReport, error)
	FetchDirectoryFn func(ctx context.Context) ([]backend.Employee, error)

	// UpdateCalls counts UpdateProject invocations.
	UpdateCalls atomic.Int32
}

var _ backend.Client = (*FakeBackend)(nil)

func (f *FakeBackend) FetchProject(ctx context.Context, id ident.ID) (*backend.ProjectSnapshot, error) {
	if f.FetchProjectFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.FetchProjectFn(ctx, id)
}

func (f *FakeBackend) CreateProject(ctx context.Context, req backend.ProjectCreate) (*domain.Project, error) {
	if f.CreateProjectFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.CreateProjectFn(ctx, req)
}

func (f *FakeBackend) ListProjects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	if f.ListProjectsFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.ListProjectsFn(ctx, status)
}

func (f *FakeBackend) UpdateProject(ctx context.Context, id ident.ID, patch backend.ProjectPatch) (*domain.Project, error) {
	f.UpdateCalls.Add(1)
	if f.UpdateProjectFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.UpdateProjectFn(ctx, id, patch)
}

func (f *FakeBackend) Decompose(ctx context.Context, id ident.ID) (*backend.DecomposeResult, error) {
	if f.DecomposeFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.DecomposeFn(ctx, id)
}

func (f *FakeBackend) Match(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
	if f.MatchFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.MatchFn(ctx, id, teamSize)
}

func (f *FakeBackend) MatchPreview(ctx context.Context, req backend.MatchPreviewRequest) ([]backend.MatchEntry, error) {
	if f.MatchPreviewFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.MatchPreviewFn(ctx, req)
}

func (f *FakeBackend) ReplanSimulate(ctx context.Context, id ident.ID) (*backend.SimulateResult, error) {
	if f.ReplanSimulateFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.ReplanSimulateFn(ctx, id)
}

func (f *FakeBackend) ReplanApply(ctx context.Context, id ident.ID, tasks []domain.Task, roster []domain.TeamMember) (*backend.ApplyResult, error) {
	if f.ReplanApplyFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.ReplanApplyFn(ctx, id, tasks, roster)
}

func (f *FakeBackend) FetchHealth(ctx context.Context, id ident.ID) (*backend.HealthReport, error) {
	if f.FetchHealthFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.FetchHealthFn(ctx, id)
}

func (f *FakeBackend) FetchDirectory(ctx context.Context) ([]backend.Employee, error) {
	if f.FetchDirectoryFn == nil {
		return nil, ErrFakeUnconfigured
	}
	return f.FetchDirectoryFn(ctx)
}

func (f *FakeBackend) Available(ctx context.Context) bool { return true }
