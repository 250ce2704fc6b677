package domain

import (
	"time"

	"github.com/lvoisin/crewctl/internal/ident"
)

// RequiredSkill is a skill demanded by a project, with the expected level.
type RequiredSkill struct {
	Name  string
	Level SkillLevel
}

// OptimizationEvent is one entry in a project's replan history.
type OptimizationEvent struct {
	At           time.Time
	Summary      string
	TasksUpdated int
	TeamSize     int
}

// Project is the working copy of a stored project document. The engine
// holds it for the lifetime of an orchestration session; it may diverge
// from the stored copy until Finalize persists it.
type Project struct {
	ID                 ident.ID
	Title              string
	Description        string
	Deadline           *time.Time
	Status             ProjectStatus
	RequiredSkills     []RequiredSkill
	ExperienceRequired float64
	Tasks              []Task
	AssignedTeam       []ident.ID
	OptimizationLog    []OptimizationEvent
	OptimizationCycle  int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayID returns a short identifier for display, truncating long
// backend object ids to 12 characters.
func (p *Project) DisplayID() string {
	s := p.ID.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

// Finalized reports whether the project has been committed.
func (p *Project) Finalized() bool { return p.Status == ProjectFinalized }

// UnassignedTasks returns the tasks with no assignee — the task pool view
// of the embedded task list.
func (p *Project) UnassignedTasks() []Task {
	var out []Task
	for _, t := range p.Tasks {
		if !t.Assigned() {
			out = append(out, t)
		}
	}
	return out
}

// RecordOptimization appends a replan event and bumps the cycle counter.
func (p *Project) RecordOptimization(ev OptimizationEvent) {
	p.OptimizationLog = append(p.OptimizationLog, ev)
	p.OptimizationCycle++
}
