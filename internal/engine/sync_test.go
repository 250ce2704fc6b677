package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// syncStubClient serves canned snapshots for the sync loop tests.
type syncStubClient struct {
	backend.Client

	fetches atomic.Int32
	snap    func() *backend.ProjectSnapshot
	err     error
}

func (c *syncStubClient) FetchProject(ctx context.Context, id ident.ID) (*backend.ProjectSnapshot, error) {
	c.fetches.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.snap(), nil
}

func TestSyncLoop_InstallsPolledSnapshots(t *testing.T) {
	s := seededSession(t)
	client := &syncStubClient{snap: func() *backend.ProjectSnapshot {
		next := testSnapshot()
		next.Project.Title = "Synced title"
		return next
	}}

	updates := make(chan Snapshot, 1)
	loop := NewSyncLoop(s, client, 10*time.Millisecond)
	loop.OnUpdate = func(snap Snapshot) {
		select {
		case updates <- snap:
		default:
		}
	}

	loop.Start(context.Background())
	defer loop.Stop()

	select {
	case snap := <-updates:
		assert.Equal(t, "Synced title", snap.Project.Title)
	case <-time.After(time.Second):
		t.Fatal("no sync update arrived")
	}
}

func TestSyncLoop_ErrorsDoNotStopPolling(t *testing.T) {
	s := seededSession(t)
	client := &syncStubClient{err: errors.New("backend down")}

	errs := make(chan error, 4)
	loop := NewSyncLoop(s, client, 5*time.Millisecond)
	loop.OnError = func(err error) {
		select {
		case errs <- err:
		default:
		}
	}

	loop.Start(context.Background())
	defer loop.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-errs:
		case <-time.After(time.Second):
			t.Fatal("sync loop stopped reporting after an error")
		}
	}
	assert.GreaterOrEqual(t, client.fetches.Load(), int32(2))
}

func TestSyncLoop_StopWaitsForGoroutine(t *testing.T) {
	s := seededSession(t)
	client := &syncStubClient{snap: testSnapshot}

	loop := NewSyncLoop(s, client, 5*time.Millisecond)
	loop.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	loop.Stop()

	after := client.fetches.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, client.fetches.Load(), "no fetches after Stop returns")

	// Stopping twice is safe, as is restarting.
	loop.Stop()
	loop.Start(context.Background())
	loop.Stop()
}

func TestSyncLoop_StagedDraftBlocksInstall(t *testing.T) {
	s := seededSession(t)
	require.NoError(t, s.Stage([]domain.Task{{ID: "n1", Title: "Draft task"}}, nil))

	client := &syncStubClient{snap: testSnapshot}
	loop := NewSyncLoop(s, client, 5*time.Millisecond)
	installed := atomic.Bool{}
	loop.OnUpdate = func(Snapshot) { installed.Store(true) }

	loop.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	loop.Stop()

	assert.False(t, installed.Load(), "staged preview must block sync installs")
	assert.Equal(t, "Draft task", s.Snapshot().Pool[0].Title)
	assert.Greater(t, client.fetches.Load(), int32(0), "polling itself continues")
}
