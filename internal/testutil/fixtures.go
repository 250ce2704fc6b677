// Package testutil provides fixtures and fakes shared by the package
// tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = &d
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = tasks
	}
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        ident.ID(uuid.New().String()),
		Title:     title,
		Status:    domain.ProjectDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = ident.ID(id)
	}
}

func WithAssignee(id string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedTo = ident.ID(id)
	}
}

func WithTaskDeadline(d string) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = d
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:             domain.NewTaskID(),
		Title:          title,
		Priority:       domain.PriorityMedium,
		EstimatedHours: 4,
		Status:         domain.TaskBacklog,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Member options
type MemberOption func(*domain.TeamMember)

func WithSkills(names ...string) MemberOption {
	return func(m *domain.TeamMember) {
		m.Skills = nil
		for _, n := range names {
			m.Skills = append(m.Skills, domain.SkillInfo{Name: n, Level: domain.SkillMid})
		}
	}
}

func WithAssignment(a domain.Assignment) MemberOption {
	return func(m *domain.TeamMember) {
		m.Assignment = &a
	}
}

func NewTestMember(id, name string, opts ...MemberOption) domain.TeamMember {
	m := domain.TeamMember{
		Profile: domain.EmployeeProfile{
			ID:       ident.ID(id),
			FullName: name,
		},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewTestSnapshot bundles a project and team the way a fetch returns them.
func NewTestSnapshot(p *domain.Project, team ...domain.TeamMember) *backend.ProjectSnapshot {
	return &backend.ProjectSnapshot{Project: *p, Team: team}
}

// NewMatchEntry builds a match result for a candidate.
func NewMatchEntry(id, name string, score float64, taskTitle string) backend.MatchEntry {
	return backend.MatchEntry{
		Profile: domain.EmployeeProfile{ID: ident.ID(id), FullName: name},
		Score:   score,
		Assignment: domain.Assignment{
			TaskTitle:      taskTitle,
			Score:          score,
			SuggestedHours: 4,
			Deadline:       domain.DeadlineTBD,
		},
	}
}
