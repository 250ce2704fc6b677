package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/domain"
)

func TestEdit_AppendTaskAssignsSyntheticID(t *testing.T) {
	s := seededSession(t)

	err := s.Edit(func(w *Working) error {
		w.AppendTask(domain.Task{Title: "Untracked work"})
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Pool, 2)
	assert.False(t, snap.Pool[1].ID.IsZero())
}

func TestEdit_RemoveTaskByID(t *testing.T) {
	s := seededSession(t)

	require.NoError(t, s.Edit(func(w *Working) error {
		assert.True(t, w.RemoveTaskByID("t1"))
		assert.False(t, w.RemoveTaskByID("t1"), "second removal finds nothing")
		return nil
	}))
	assert.Empty(t, s.Snapshot().Pool)
}

func TestEdit_RemoveTaskByTitleFallback(t *testing.T) {
	s := seededSession(t)

	require.NoError(t, s.Edit(func(w *Working) error {
		assert.False(t, w.RemoveTaskByID("unknown-id"))
		assert.True(t, w.RemoveTaskByTitle("Setup CI"))
		return nil
	}))
	assert.Empty(t, s.Snapshot().Pool)
}

func TestEdit_UpsertAndRemoveByIndex(t *testing.T) {
	s := seededSession(t)

	require.NoError(t, s.Edit(func(w *Working) error {
		require.NoError(t, w.UpsertTask(0, domain.Task{ID: "t1", Title: "Setup CD"}))
		assert.Error(t, w.UpsertTask(5, domain.Task{}))
		assert.Error(t, w.RemoveTask(-1))
		return nil
	}))
	assert.Equal(t, "Setup CD", s.Snapshot().Pool[0].Title)
}

func TestEdit_ReplaceAllTasksEnsuresIDs(t *testing.T) {
	s := seededSession(t)

	require.NoError(t, s.Edit(func(w *Working) error {
		w.ReplaceAllTasks([]domain.Task{
			{Title: "Phase 1"},
			{ID: "keep", Title: "Phase 2"},
		})
		return nil
	}))

	pool := s.Snapshot().Pool
	require.Len(t, pool, 2)
	assert.False(t, pool[0].ID.IsZero())
	assert.Equal(t, "keep", pool[1].ID.String())
}
