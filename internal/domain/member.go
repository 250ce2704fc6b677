package domain

import "github.com/lvoisin/crewctl/internal/ident"

// EmployeeProfile is the directory entry for one employee.
type EmployeeProfile struct {
	ID             ident.ID
	FullName       string
	Specialization string
	AvatarURL      string
}

// DisplayName returns the profile name or a neutral placeholder; missing
// optional profile fields must never break rendering.
func (p EmployeeProfile) DisplayName() string {
	if p.FullName == "" {
		return "Unassigned"
	}
	return p.FullName
}

// SkillInfo is one skill attached to an employee profile.
type SkillInfo struct {
	Name            string
	Level           SkillLevel
	YearsExperience float64
}

// Assignment is the AI-proposed pairing of a roster member with a task.
type Assignment struct {
	TaskID         ident.ID
	TaskTitle      string
	Description    string
	Reasoning      string
	SuggestedHours int
	Deadline       string
	MatchedSkills  []string
	Score          float64
}

// TeamMember is one roster entry: a profile plus an optional assignment.
// A member with a nil assignment is attached to the project but inert.
type TeamMember struct {
	Profile    EmployeeProfile
	Skills     []SkillInfo
	Assignment *Assignment
}

// HasAssignment reports whether the member carries productive work.
func (m TeamMember) HasAssignment() bool { return m.Assignment != nil }

// SkillNames returns the member's skill names in listed order.
func (m TeamMember) SkillNames() []string {
	names := make([]string, 0, len(m.Skills))
	for _, s := range m.Skills {
		names = append(names, s.Name)
	}
	return names
}
