package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lvoisin/crewctl/internal/ident"
)

// DeadlineTBD is the placeholder deadline the planner emits for tasks it
// could not schedule.
const DeadlineTBD = "TBD"

// Task is one unit of project work. Tasks live inside the owning project
// document; there is no separate task collection. ID is a durable synthetic
// id assigned client-side at creation so reconciliation never depends on
// title strings.
type Task struct {
	ID             ident.ID
	Title          string
	Description    string
	Priority       TaskPriority
	EstimatedHours int
	RequiredSkills []string
	Deadline       string
	Status         TaskStatus
	AssignedTo     ident.ID
}

// NewTaskID returns a fresh synthetic task id.
func NewTaskID() ident.ID {
	return ident.ID(uuid.New().String())
}

// EnsureID assigns a synthetic id if the task arrived without one
// (planner output and legacy documents have none).
func (t *Task) EnsureID() {
	if t.ID.IsZero() {
		t.ID = NewTaskID()
	}
}

// Assigned reports whether the task references a team member.
func (t *Task) Assigned() bool { return !t.AssignedTo.IsZero() }

// NormalizePriority maps arbitrary priority strings onto the known set,
// defaulting to medium.
func NormalizePriority(s string) TaskPriority {
	p := strings.ToLower(strings.TrimSpace(s))
	if ValidTaskPriorities[p] {
		return TaskPriority(p)
	}
	return PriorityMedium
}

// DisplayDeadline returns the deadline or the TBD placeholder.
func (t *Task) DisplayDeadline() string {
	if strings.TrimSpace(t.Deadline) == "" {
		return DeadlineTBD
	}
	return t.Deadline
}
