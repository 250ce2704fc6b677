package engine

import (
	"fmt"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Working is the mutable view of a session handed to Edit callbacks.
// It is only valid inside the callback.
type Working struct {
	s *Session
}

// Pool returns the current task pool (the live slice; callers inside an
// Edit callback may read it but must mutate through the methods below).
func (w *Working) Pool() []domain.Task { return w.s.pool }

// ReplaceAllTasks swaps the entire pool.
func (w *Working) ReplaceAllTasks(tasks []domain.Task) {
	for i := range tasks {
		tasks[i].EnsureID()
	}
	w.s.pool = copyTasks(tasks)
}

// AppendTask adds a task to the pool, assigning a synthetic id if needed.
func (w *Working) AppendTask(t domain.Task) {
	t.EnsureID()
	w.s.pool = append(w.s.pool, t)
}

// UpsertTask replaces the task at index.
func (w *Working) UpsertTask(index int, t domain.Task) error {
	if index < 0 || index >= len(w.s.pool) {
		return fmt.Errorf("task index %d out of range (pool has %d)", index, len(w.s.pool))
	}
	t.EnsureID()
	w.s.pool[index] = t
	return nil
}

// RemoveTask removes the task at index.
func (w *Working) RemoveTask(index int) error {
	if index < 0 || index >= len(w.s.pool) {
		return fmt.Errorf("task index %d out of range (pool has %d)", index, len(w.s.pool))
	}
	w.s.pool = append(w.s.pool[:index], w.s.pool[index+1:]...)
	return nil
}

// RemoveTaskByID removes the pool task with the given id. Returns false
// when no task matched.
func (w *Working) RemoveTaskByID(id ident.ID) bool {
	for i, t := range w.s.pool {
		if ident.Equal(t.ID.String(), id.String()) {
			w.s.pool = append(w.s.pool[:i], w.s.pool[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveTaskByTitle removes the first pool task with the given title.
// Fallback reconciliation for server assignments that carry no task id.
func (w *Working) RemoveTaskByTitle(title string) bool {
	for i, t := range w.s.pool {
		if t.Title == title {
			w.s.pool = append(w.s.pool[:i], w.s.pool[i+1:]...)
			return true
		}
	}
	return false
}

// FindTaskByTitle returns the first pool task with the given title.
func (w *Working) FindTaskByTitle(title string) (domain.Task, bool) {
	for _, t := range w.s.pool {
		if t.Title == title {
			return t, true
		}
	}
	return domain.Task{}, false
}
