// Package engine holds the orchestration session: the working copy of one
// project's task pool and team roster, kept loosely in sync with the
// backend by a polling loop and mutated by the operator-facing services.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Snapshot is an immutable copy of the session's working state.
type Snapshot struct {
	Project  domain.Project
	Pool     []domain.Task
	Roster   []domain.TeamMember
	Version  uint64
	SyncedAt time.Time
}

// Session is the working copy for one orchestration session. All access
// goes through its methods; the mutex serializes the sync loop against
// operator-driven mutations, and the single in-flight flag spans a whole
// operation (in-memory edit plus the persist call that follows) so a poll
// never lands mid-operation.
type Session struct {
	mu sync.Mutex

	projectID ident.ID
	project   domain.Project
	pool      []domain.Task
	roster    []domain.TeamMember

	inFlight bool

	// staged marks preview mode: the pool/roster reflect an unpersisted
	// simulation draft. preStage holds the state to restore on discard.
	staged   bool
	preStage *Snapshot

	version  uint64
	syncedAt time.Time
}

// NewSession creates an empty session for the given project id. Seed it
// with the first fetch before use.
func NewSession(projectID ident.ID) *Session {
	return &Session{projectID: projectID}
}

// ProjectID returns the session's project identity.
func (s *Session) ProjectID() ident.ID { return s.projectID }

// BeginOp marks a mutating operation in flight. Concurrent operations are
// rejected rather than queued; the caller surfaces the error and the
// operator retries. Every BeginOp must be paired with EndOp.
func (s *Session) BeginOp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return fmt.Errorf("another operation is in flight")
	}
	s.inFlight = true
	return nil
}

// EndOp clears the in-flight flag.
func (s *Session) EndOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Seed installs the first fetched snapshot, deriving roster assignments
// from the project's assigned tasks.
func (s *Session) Seed(snap *backend.ProjectSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(snap)
}

// ApplySync installs a polled snapshot (last-fetch-wins). The tick is
// dropped when an operation is in flight or a draft is staged, so the
// poll never clobbers an edit or the preview. Returns false when dropped.
func (s *Session) ApplySync(snap *backend.ProjectSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight || s.staged {
		return false
	}
	s.install(snap)
	return true
}

// install assumes the lock is held.
func (s *Session) install(snap *backend.ProjectSnapshot) {
	s.project = snap.Project
	s.pool = nil
	s.roster = nil

	for _, t := range snap.Project.Tasks {
		if !t.Assigned() {
			s.pool = append(s.pool, t)
		}
	}

	for _, m := range snap.Team {
		member := m
		// Reattach the member's assignment from the embedded task list.
		for _, t := range snap.Project.Tasks {
			if t.Assigned() && ident.Equal(t.AssignedTo.String(), member.Profile.ID.String()) {
				member.Assignment = &domain.Assignment{
					TaskID:         t.ID,
					TaskTitle:      t.Title,
					Description:    t.Description,
					SuggestedHours: t.EstimatedHours,
					Deadline:       t.Deadline,
				}
				break
			}
		}
		s.roster = append(s.roster, member)
	}

	s.version++
	s.syncedAt = time.Now()
}

// Snapshot returns a deep copy of the current working state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Project:  s.project,
		Pool:     copyTasks(s.pool),
		Roster:   copyRoster(s.roster),
		Version:  s.version,
		SyncedAt: s.syncedAt,
	}
}

// Edit runs fn against the live working copy under the session lock.
func (s *Session) Edit(fn func(w *Working) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(&Working{s: s})
	s.version++
	return err
}

// Restore reinstates a previously captured snapshot. Services use it to
// roll back the working copy when a persist call fails mid-operation.
func (s *Session) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = snap.Project
	s.pool = copyTasks(snap.Pool)
	s.roster = copyRoster(snap.Roster)
	s.version++
}

// Staged reports whether a simulation draft is staged.
func (s *Session) Staged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged
}

// Stage swaps the draft's proposed tasks and roster into the live working
// copy, keeping the pre-stage snapshot for Discard. Fails when a draft is
// already staged.
func (s *Session) Stage(tasks []domain.Task, roster []domain.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged {
		return fmt.Errorf("a staged draft is already pending")
	}
	prev := s.snapshotLocked()
	s.preStage = &prev
	s.pool = copyTasks(tasks)
	s.roster = copyRoster(roster)
	s.staged = true
	s.version++
	return nil
}

// DiscardStage restores the pre-stage snapshot. No-op when nothing is
// staged.
func (s *Session) DiscardStage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged && s.preStage != nil {
		s.pool = copyTasks(s.preStage.Pool)
		s.roster = copyRoster(s.preStage.Roster)
		s.project = s.preStage.Project
		s.version++
	}
	s.staged = false
	s.preStage = nil
}

// CommitStage clears preview mode after a successful apply, keeping the
// staged state as the new live working copy.
func (s *Session) CommitStage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = false
	s.preStage = nil
	s.version++
}

func copyTasks(in []domain.Task) []domain.Task {
	if in == nil {
		return nil
	}
	out := make([]domain.Task, len(in))
	copy(out, in)
	return out
}

func copyRoster(in []domain.TeamMember) []domain.TeamMember {
	if in == nil {
		return nil
	}
	out := make([]domain.TeamMember, len(in))
	for i, m := range in {
		out[i] = m
		if m.Assignment != nil {
			a := *m.Assignment
			out[i].Assignment = &a
		}
	}
	return out
}
