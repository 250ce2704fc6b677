package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/service"
	"github.com/lvoisin/crewctl/internal/testutil"
)

func newRepo(t *testing.T) *SQLiteJournalRepo {
	t.Helper()
	return NewSQLiteJournalRepo(testutil.NewTestDB(t))
}

func entry(id, projectID, action string, at time.Time) service.JournalEntry {
	return service.JournalEntry{
		ID:        id,
		ProjectID: projectID,
		Action:    action,
		Detail:    "detail for " + id,
		At:        at,
	}
}

func TestJournal_RecordAndListRecent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, entry("e1", "p1", "distribute", base)))
	require.NoError(t, repo.Record(ctx, entry("e2", "p1", "simulate", base.Add(time.Minute))))
	require.NoError(t, repo.Record(ctx, entry("e3", "p2", "finalize", base.Add(2*time.Minute))))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, "e3", got[0].ID)
	assert.Equal(t, "finalize", got[0].Action)
	assert.Equal(t, base.Add(2*time.Minute), got[0].At)
	assert.Equal(t, "e1", got[2].ID)
}

func TestJournal_ListRecentHonorsLimit(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := entry(fmt.Sprintf("e%d", i), "p1", "distribute", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Record(ctx, e))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "e4", got[0].ID)
}

func TestJournal_ListByProject(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, entry("e1", "p1", "distribute", base)))
	require.NoError(t, repo.Record(ctx, entry("e2", "p2", "simulate", base.Add(time.Minute))))

	got, err := repo.ListByProject(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)

	got, err = repo.ListByProject(ctx, "p3", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJournal_Prune(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := entry(fmt.Sprintf("e%d", i), "p1", "distribute", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Record(ctx, e))
	}

	require.NoError(t, repo.Prune(ctx, 2))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e4", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)
}
