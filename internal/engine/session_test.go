package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

func testSnapshot() *backend.ProjectSnapshot {
	return &backend.ProjectSnapshot{
		Project: domain.Project{
			ID:     "p1",
			Title:  "Migration",
			Status: domain.ProjectDraft,
			Tasks: []domain.Task{
				{ID: "t1", Title: "Setup CI", EstimatedHours: 4},
				{ID: "t2", Title: "Write docs", EstimatedHours: 2, AssignedTo: "e1"},
			},
			AssignedTeam: []ident.ID{"e1"},
		},
		Team: []domain.TeamMember{
			{Profile: domain.EmployeeProfile{ID: "e1", FullName: "Felix Chen"}},
		},
	}
}

func seededSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("p1")
	s.Seed(testSnapshot())
	return s
}

func TestSeed_SplitsPoolAndReattachesAssignments(t *testing.T) {
	s := seededSession(t)
	snap := s.Snapshot()

	require.Len(t, snap.Pool, 1)
	assert.Equal(t, "Setup CI", snap.Pool[0].Title)

	require.Len(t, snap.Roster, 1)
	member := snap.Roster[0]
	require.NotNil(t, member.Assignment)
	assert.Equal(t, "Write docs", member.Assignment.TaskTitle)
	assert.Equal(t, "t2", member.Assignment.TaskID.String())
	assert.False(t, snap.SyncedAt.IsZero())
}

func TestApplySync_DroppedWhileOpInFlight(t *testing.T) {
	s := seededSession(t)
	before := s.Snapshot()

	require.NoError(t, s.BeginOp())
	next := testSnapshot()
	next.Project.Title = "Renamed elsewhere"
	assert.False(t, s.ApplySync(next), "tick must be dropped mid-operation")
	s.EndOp()

	after := s.Snapshot()
	assert.Equal(t, before.Project.Title, after.Project.Title)
	assert.Equal(t, before.Version, after.Version)

	assert.True(t, s.ApplySync(next), "tick lands once the operation ends")
	assert.Equal(t, "Renamed elsewhere", s.Snapshot().Project.Title)
}

func TestApplySync_DroppedWhileStaged(t *testing.T) {
	s := seededSession(t)
	require.NoError(t, s.Stage(
		[]domain.Task{{ID: "t9", Title: "Proposed task"}},
		nil,
	))

	assert.False(t, s.ApplySync(testSnapshot()))

	snap := s.Snapshot()
	require.Len(t, snap.Pool, 1)
	assert.Equal(t, "Proposed task", snap.Pool[0].Title)
}

func TestBeginOp_RejectsConcurrentOperation(t *testing.T) {
	s := seededSession(t)
	require.NoError(t, s.BeginOp())
	assert.Error(t, s.BeginOp())
	s.EndOp()
	assert.NoError(t, s.BeginOp())
	s.EndOp()
}

func TestStage_Discard_RestoresExactPreStageState(t *testing.T) {
	s := seededSession(t)
	before := s.Snapshot()

	require.NoError(t, s.Stage(
		[]domain.Task{{ID: "n1", Title: "New plan"}},
		[]domain.TeamMember{{Profile: domain.EmployeeProfile{ID: "e2", FullName: "Ada"}}},
	))
	assert.True(t, s.Staged())

	staged := s.Snapshot()
	require.Len(t, staged.Pool, 1)
	assert.Equal(t, "New plan", staged.Pool[0].Title)

	s.DiscardStage()
	assert.False(t, s.Staged())

	after := s.Snapshot()
	assert.Equal(t, before.Pool, after.Pool)
	assert.Equal(t, before.Roster, after.Roster)
	assert.Equal(t, before.Project, after.Project)
}

func TestStage_RejectsDoubleStage(t *testing.T) {
	s := seededSession(t)
	require.NoError(t, s.Stage(nil, nil))
	assert.Error(t, s.Stage(nil, nil))
}

func TestCommitStage_KeepsStagedStateLive(t *testing.T) {
	s := seededSession(t)
	require.NoError(t, s.Stage(
		[]domain.Task{{ID: "n1", Title: "Committed plan"}},
		nil,
	))
	s.CommitStage()

	assert.False(t, s.Staged())
	snap := s.Snapshot()
	require.Len(t, snap.Pool, 1)
	assert.Equal(t, "Committed plan", snap.Pool[0].Title)

	// Sync resumes once the draft is committed.
	assert.True(t, s.ApplySync(testSnapshot()))
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s := seededSession(t)
	snap := s.Snapshot()
	snap.Pool[0].Title = "mutated copy"
	snap.Roster[0].Assignment.TaskTitle = "mutated copy"

	fresh := s.Snapshot()
	assert.Equal(t, "Setup CI", fresh.Pool[0].Title)
	assert.Equal(t, "Write docs", fresh.Roster[0].Assignment.TaskTitle)
}
