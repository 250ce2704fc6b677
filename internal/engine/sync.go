package engine

import (
	"context"
	"sync"
	"time"

	"github.com/lvoisin/crewctl/internal/backend"
)

// SyncLoop polls the backend for the session's project and installs each
// fetched snapshot into the session. The loop is scoped to one session:
// closing the session stops its timer, and a new session starts a fresh
// one. Fetch errors never stop the loop; the next tick tries again.
type SyncLoop struct {
	session  *Session
	client   backend.Client
	interval time.Duration

	// OnUpdate fires after a snapshot lands (not for dropped ticks).
	// OnError fires on fetch failures. Both are optional.
	OnUpdate func(Snapshot)
	OnError  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSyncLoop creates a stopped loop for the session.
func NewSyncLoop(session *Session, client backend.Client, interval time.Duration) *SyncLoop {
	return &SyncLoop{
		session:  session,
		client:   client,
		interval: interval,
	}
}

// Start launches the polling goroutine. Starting a running loop is a
// no-op.
func (l *SyncLoop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

// Stop halts the loop and waits for the polling goroutine to exit.
func (l *SyncLoop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.done = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (l *SyncLoop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

func (l *SyncLoop) tick(ctx context.Context) {
	snap, err := l.client.FetchProject(ctx, l.session.ProjectID())
	if err != nil {
		if l.OnError != nil && ctx.Err() == nil {
			l.OnError(err)
		}
		return
	}
	if l.session.ApplySync(snap) && l.OnUpdate != nil {
		l.OnUpdate(l.session.Snapshot())
	}
}
