package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/ident"
	"github.com/lvoisin/crewctl/internal/testutil"
)

func poolFixture(t *testing.T) (*engine.Session, *testutil.FakeBackend, PoolService) {
	t.Helper()
	p := testutil.NewTestProject("Migration",
		testutil.WithTasks(testutil.NewTestTask("Old task")))
	session := engine.NewSession(p.ID)
	session.Seed(testutil.NewTestSnapshot(p))

	fake := &testutil.FakeBackend{
		DecomposeFn: func(ctx context.Context, id ident.ID) (*backend.DecomposeResult, error) {
			return &backend.DecomposeResult{
				Tasks: []domain.Task{
					{Title: "Phase 1"},
					{Title: "Phase 2"},
				},
				TotalEstimatedHours: 24,
				RecommendedTeamSize: 3,
			}, nil
		},
		UpdateProjectFn: func(ctx context.Context, id ident.ID, patch backend.ProjectPatch) (*domain.Project, error) {
			updated := *p
			updated.Tasks = patch.Tasks
			return &updated, nil
		},
	}
	return session, fake, NewPoolService(session, fake, nil)
}

func TestDecompose_ReplacesPool(t *testing.T) {
	session, _, svc := poolFixture(t)

	res, err := svc.Decompose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.RecommendedTeamSize)

	pool := session.Snapshot().Pool
	require.Len(t, pool, 2)
	assert.Equal(t, "Phase 1", pool[0].Title)
	assert.False(t, pool[0].ID.IsZero())
}

func TestDecompose_FailureKeepsPreviousPool(t *testing.T) {
	session, fake, svc := poolFixture(t)
	fake.DecomposeFn = func(ctx context.Context, id ident.ID) (*backend.DecomposeResult, error) {
		return nil, errors.New("planner overloaded")
	}

	_, err := svc.Decompose(context.Background())
	require.Error(t, err)

	pool := session.Snapshot().Pool
	require.Len(t, pool, 1)
	assert.Equal(t, "Old task", pool[0].Title)
}

func TestDecompose_BlockedWhileStaged(t *testing.T) {
	session, _, svc := poolFixture(t)
	require.NoError(t, session.Stage(nil, nil))

	_, err := svc.Decompose(context.Background())
	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrStagedDraft, distErr.Code)
}

func TestPool_AddAndRemoveTask(t *testing.T) {
	session, _, svc := poolFixture(t)

	require.NoError(t, svc.AddTask(context.Background(), domain.Task{Title: "Manual task"}))
	pool := session.Snapshot().Pool
	require.Len(t, pool, 2)
	assert.False(t, pool[1].ID.IsZero())

	require.NoError(t, svc.RemoveTask(context.Background(), 0))
	pool = session.Snapshot().Pool
	require.Len(t, pool, 1)
	assert.Equal(t, "Manual task", pool[0].Title)

	assert.Error(t, svc.RemoveTask(context.Background(), 7))
}

func TestPool_MutationsPersistTaskList(t *testing.T) {
	_, fake, svc := poolFixture(t)

	var written []domain.Task
	inner := fake.UpdateProjectFn
	fake.UpdateProjectFn = func(ctx context.Context, id ident.ID, patch backend.ProjectPatch) (*domain.Project, error) {
		written = patch.Tasks
		return inner(ctx, id, patch)
	}

	require.NoError(t, svc.AddTask(context.Background(), domain.Task{Title: "Manual task"}))

	assert.Equal(t, int32(1), fake.UpdateCalls.Load())
	require.Len(t, written, 2)
	assert.Equal(t, "Manual task", written[1].Title)
}

func TestPool_PersistFailureRollsBack(t *testing.T) {
	session, fake, svc := poolFixture(t)
	fake.UpdateProjectFn = func(ctx context.Context, id ident.ID, patch backend.ProjectPatch) (*domain.Project, error) {
		return nil, errors.New("write rejected")
	}

	err := svc.AddTask(context.Background(), domain.Task{Title: "Manual task"})
	require.Error(t, err)

	pool := session.Snapshot().Pool
	require.Len(t, pool, 1)
	assert.Equal(t, "Old task", pool[0].Title)
}
