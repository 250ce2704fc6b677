package health

import (
	"context"
	"sync"
	"time"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Monitor polls the backend health endpoint for one project and publishes
// classified verdicts. Like the project sync loop it is scoped to a
// session and survives fetch errors.
type Monitor struct {
	projectID ident.ID
	session   *engine.Session
	client    backend.Client
	interval  time.Duration
	now       func() time.Time

	OnVerdict func(ClassifyResult)
	OnError   func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a stopped monitor for the session's project.
func NewMonitor(session *engine.Session, client backend.Client, interval time.Duration) *Monitor {
	return &Monitor{
		projectID: session.ProjectID(),
		session:   session,
		client:    client,
		interval:  interval,
		now:       time.Now,
	}
}

// Start launches the polling goroutine. Starting a running monitor is a
// no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop halts the monitor and waits for the polling goroutine to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *Monitor) tick(ctx context.Context) {
	verdict, err := m.Check(ctx)
	if err != nil {
		if m.OnError != nil && ctx.Err() == nil {
			m.OnError(err)
		}
		return
	}
	if m.OnVerdict != nil {
		m.OnVerdict(verdict)
	}
}

// Check fetches and classifies the project's health once.
func (m *Monitor) Check(ctx context.Context) (ClassifyResult, error) {
	report, err := m.client.FetchHealth(ctx, m.projectID)
	if err != nil {
		return ClassifyResult{}, err
	}

	snap := m.session.Snapshot()
	return Classify(ClassifyInput{
		Report:       *report,
		OverdueTasks: CountOverdue(snap.Project.Tasks, m.now()),
	}), nil
}

// CountOverdue counts unfinished tasks whose deadline (YYYY-MM-DD) has
// passed. Unparseable or TBD deadlines never count as overdue.
func CountOverdue(tasks []domain.Task, now time.Time) int {
	overdue := 0
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			continue
		}
		due, err := time.Parse("2006-01-02", t.Deadline)
		if err != nil {
			continue
		}
		if due.Before(now.Truncate(24 * time.Hour)) {
			overdue++
		}
	}
	return overdue
}
