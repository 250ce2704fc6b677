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

func distSession(t *testing.T, tasks ...domain.Task) *engine.Session {
	t.Helper()
	p := testutil.NewTestProject("Migration", testutil.WithTasks(tasks...))
	s := engine.NewSession(p.ID)
	s.Seed(testutil.NewTestSnapshot(p))
	return s
}

func TestDistribute_HiresAndRemovesPoolTasks(t *testing.T) {
	ci := testutil.NewTestTask("Setup CI", testutil.WithTaskID("t-ci"))
	docs := testutil.NewTestTask("Write docs", testutil.WithTaskID("t-docs"))
	session := distSession(t, ci, docs)

	entry := testutil.NewMatchEntry("e1", "Felix Chen", 12, "Setup CI")
	entry.Assignment.TaskID = "t-ci"
	fake := &testutil.FakeBackend{
		MatchFn: func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
			assert.Equal(t, 3, teamSize)
			return []backend.MatchEntry{
				entry,
				testutil.NewMatchEntry("e2", "Low Scorer", 0, "Write docs"),
			}, nil
		},
	}

	svc := NewDistributionService(session, fake, nil)
	resp, err := svc.Distribute(context.Background(), contract.DistributeRequest{TeamSize: 3})
	require.NoError(t, err)

	require.Len(t, resp.Hired, 1)
	assert.Equal(t, "Felix Chen", resp.Hired[0].Member.Profile.FullName)
	assert.True(t, resp.Hired[0].PoolTaskRemoved)
	require.Len(t, resp.Skipped, 1)
	assert.Contains(t, resp.Skipped[0].Reason, "non-positive score")
	assert.Equal(t, 1, resp.PoolRemaining)

	snap := session.Snapshot()
	require.Len(t, snap.Roster, 1)
	require.NotNil(t, snap.Roster[0].Assignment)
	assert.Equal(t, "Setup CI", snap.Roster[0].Assignment.TaskTitle)
	require.Len(t, snap.Pool, 1)
	assert.Equal(t, "Write docs", snap.Pool[0].Title)
}

func TestDistribute_TitleFallbackWhenNoTaskID(t *testing.T) {
	session := distSession(t, testutil.NewTestTask("Setup CI", testutil.WithTaskID("t-ci")))

	fake := &testutil.FakeBackend{
		MatchFn: func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
			// No task id on the entry; reconciliation falls back to title.
			return []backend.MatchEntry{testutil.NewMatchEntry("e1", "Felix", 8, "Setup CI")}, nil
		},
	}

	svc := NewDistributionService(session, fake, nil)
	resp, err := svc.Distribute(context.Background(), contract.DistributeRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Hired, 1)
	assert.True(t, resp.Hired[0].PoolTaskRemoved)
	assert.Empty(t, session.Snapshot().Pool)
}

func TestDistribute_BackendFailureLeavesStoresUntouched(t *testing.T) {
	session := distSession(t, testutil.NewTestTask("Setup CI"))
	before := session.Snapshot()

	fake := &testutil.FakeBackend{
		MatchFn: func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
			return nil, errors.New("agent overloaded")
		},
	}

	svc := NewDistributionService(session, fake, nil)
	_, err := svc.Distribute(context.Background(), contract.DistributeRequest{})
	require.Error(t, err)

	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrBackend, distErr.Code)

	after := session.Snapshot()
	assert.Equal(t, before.Pool, after.Pool)
	assert.Equal(t, before.Roster, after.Roster)
}

func TestDistribute_EmptyPoolRejected(t *testing.T) {
	session := distSession(t)
	svc := NewDistributionService(session, &testutil.FakeBackend{}, nil)

	_, err := svc.Distribute(context.Background(), contract.DistributeRequest{})
	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrEmptyPool, distErr.Code)
}

func TestDistribute_AllCandidatesUnusable(t *testing.T) {
	session := distSession(t, testutil.NewTestTask("Setup CI"))
	fake := &testutil.FakeBackend{
		MatchFn: func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
			noID := testutil.NewMatchEntry("", "Ghost", 5, "Setup CI")
			return []backend.MatchEntry{noID, testutil.NewMatchEntry("e1", "Zero", 0, "x")}, nil
		},
	}

	svc := NewDistributionService(session, fake, nil)
	_, err := svc.Distribute(context.Background(), contract.DistributeRequest{})
	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrNoCandidates, distErr.Code)
	assert.Empty(t, session.Snapshot().Roster)
}

func TestDistribute_PreviewDoesNotMutate(t *testing.T) {
	session := distSession(t, testutil.NewTestTask("Setup CI", testutil.WithTaskID("t-ci")))

	fake := &testutil.FakeBackend{
		MatchFn: func(ctx context.Context, id ident.ID, teamSize int) ([]backend.MatchEntry, error) {
			return []backend.MatchEntry{testutil.NewMatchEntry("e1", "Felix", 8, "Setup CI")}, nil
		},
	}

	svc := NewDistributionService(session, fake, nil)
	resp, err := svc.Distribute(context.Background(), contract.DistributeRequest{Preview: true})
	require.NoError(t, err)
	require.Len(t, resp.Hired, 1)

	snap := session.Snapshot()
	assert.Empty(t, snap.Roster)
	assert.Len(t, snap.Pool, 1)
}

func TestDistribute_RejectedWhileOpInFlight(t *testing.T) {
	session := distSession(t, testutil.NewTestTask("Setup CI"))
	require.NoError(t, session.BeginOp())
	defer session.EndOp()

	svc := NewDistributionService(session, &testutil.FakeBackend{}, nil)
	_, err := svc.Distribute(context.Background(), contract.DistributeRequest{})

	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrOpInFlight, distErr.Code)
}

func TestDistribute_RejectedWhenFinalized(t *testing.T) {
	p := testutil.NewTestProject("Done",
		testutil.WithProjectStatus(domain.ProjectFinalized),
		testutil.WithTasks(testutil.NewTestTask("Leftover")))
	session := engine.NewSession(p.ID)
	session.Seed(testutil.NewTestSnapshot(p))

	svc := NewDistributionService(session, &testutil.FakeBackend{}, nil)
	_, err := svc.Distribute(context.Background(), contract.DistributeRequest{})

	var distErr *contract.DistributeError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, contract.DistributeErrFinalized, distErr.Code)
}
