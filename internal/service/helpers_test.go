package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/domain"
)

type recordingJournal struct {
	entries []JournalEntry
	err     error
}

func (j *recordingJournal) Record(ctx context.Context, e JournalEntry) error {
	j.entries = append(j.entries, e)
	return j.err
}

func TestJournal_RecordsOperatorActions(t *testing.T) {
	_, _, svc := poolFixture(t)
	j := &recordingJournal{}
	svc.(*poolService).journal = j

	require.NoError(t, svc.AddTask(context.Background(), domain.Task{Title: "Manual task"}))

	require.Len(t, j.entries, 1)
	e := j.entries[0]
	assert.Equal(t, "pool_add", e.Action)
	assert.Equal(t, "Manual task", e.Detail)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.ProjectID)
	assert.False(t, e.At.IsZero())
}

func TestJournal_FailuresAreSwallowed(t *testing.T) {
	session, _, svc := poolFixture(t)
	j := &recordingJournal{err: errors.New("disk full")}
	svc.(*poolService).journal = j

	require.NoError(t, svc.AddTask(context.Background(), domain.Task{Title: "Manual task"}))

	assert.Len(t, session.Snapshot().Pool, 2)
}
