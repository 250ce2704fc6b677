package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureID_AssignsOnce(t *testing.T) {
	task := Task{Title: "Setup CI"}
	task.EnsureID()
	assert.False(t, task.ID.IsZero())

	first := task.ID
	task.EnsureID()
	assert.Equal(t, first, task.ID, "existing id must be preserved")
}

func TestNewTaskID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTaskID().String()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := map[string]TaskPriority{
		"high":     PriorityHigh,
		" HIGH ":   PriorityHigh,
		"medium":   PriorityMedium,
		"low":      PriorityLow,
		"urgent":   PriorityMedium,
		"":         PriorityMedium,
		"Critical": PriorityMedium,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePriority(in), "input %q", in)
	}
}

func TestDisplayDeadline_TBDFallback(t *testing.T) {
	assert.Equal(t, "TBD", (&Task{}).DisplayDeadline())
	assert.Equal(t, "TBD", (&Task{Deadline: "  "}).DisplayDeadline())
	assert.Equal(t, "2026-03-01", (&Task{Deadline: "2026-03-01"}).DisplayDeadline())
}

func TestUnassignedTasks_FiltersAssigned(t *testing.T) {
	p := Project{Tasks: []Task{
		{Title: "a", AssignedTo: "m1"},
		{Title: "b"},
		{Title: "c", AssignedTo: "m2"},
		{Title: "d"},
	}}
	pool := p.UnassignedTasks()
	assert.Len(t, pool, 2)
	assert.Equal(t, "b", pool[0].Title)
	assert.Equal(t, "d", pool[1].Title)
}

func TestRecordOptimization_BumpsCycle(t *testing.T) {
	var p Project
	p.RecordOptimization(OptimizationEvent{Summary: "rebalance"})
	p.RecordOptimization(OptimizationEvent{Summary: "recovery"})
	assert.Equal(t, 2, p.OptimizationCycle)
	assert.Len(t, p.OptimizationLog, 2)
}

func TestDisplayName_Placeholder(t *testing.T) {
	assert.Equal(t, "Unassigned", EmployeeProfile{}.DisplayName())
	assert.Equal(t, "Aria Volkov", EmployeeProfile{FullName: "Aria Volkov"}.DisplayName())
}
