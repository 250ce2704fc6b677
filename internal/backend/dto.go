package backend

import (
	"math"
	"strings"
	"time"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Wire DTOs for the staffing backend. Field names follow the backend's
// JSON contract; ids decode through ident.ID so the Mongo extended-JSON
// shapes never escape this package.

type taskDoc struct {
	ID             ident.ID `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	EstimatedHours float64  `json:"estimated_hours,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
	Status         string   `json:"status,omitempty"`
	AssignedTo     ident.ID `json:"assigned_to,omitempty"`
}

type requiredSkillDoc struct {
	SkillName string `json:"skill_name"`
	Level     string `json:"level"`
}

type optimizationEventDoc struct {
	At           time.Time `json:"at"`
	Summary      string    `json:"summary"`
	TasksUpdated int       `json:"tasks_updated"`
	TeamSize     int       `json:"team_size"`
}

type projectDoc struct {
	ID                 ident.ID               `json:"_id"`
	AltID              ident.ID               `json:"id,omitempty"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	RequiredSkills     []requiredSkillDoc     `json:"required_skills"`
	ExperienceRequired float64                `json:"experience_required"`
	Status             string                 `json:"status"`
	Deadline           *string                `json:"deadline,omitempty"`
	Tasks              []taskDoc              `json:"tasks"`
	AssignedTeam       []ident.ID             `json:"assigned_team"`
	OptimizationLog    []optimizationEventDoc `json:"optimization_history,omitempty"`
	OptimizationCycle  int                    `json:"optimization_cycles,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type profileDoc struct {
	ID             ident.ID `json:"id"`
	AltID          ident.ID `json:"_id,omitempty"`
	FullName       string   `json:"full_name"`
	Specialization string   `json:"specialization,omitempty"`
	AvatarURL      string   `json:"avatar_url,omitempty"`
}

type skillDoc struct {
	SkillName       string  `json:"skill_name"`
	Level           string  `json:"level"`
	YearsExperience float64 `json:"years_of_experience,omitempty"`
}

type teamEntryDoc struct {
	Profile profileDoc `json:"profile"`
	Skills  []skillDoc `json:"skills"`
}

type projectFetchDoc struct {
	Project projectDoc     `json:"project"`
	Team    []teamEntryDoc `json:"team"`
}

// matchEntryDoc covers both the match and match-preview contracts: the
// candidate reference arrives as a full profile or a bare employee_id, and
// the score field is named either "score" or "match_score".
type matchEntryDoc struct {
	Profile              *profileDoc `json:"profile,omitempty"`
	EmployeeID           ident.ID    `json:"employee_id,omitempty"`
	Skills               []skillDoc  `json:"skills,omitempty"`
	Score                *float64    `json:"score,omitempty"`
	MatchScore           *float64    `json:"match_score,omitempty"`
	MatchedSkills        []string    `json:"matched_skills,omitempty"`
	SuggestedTask        string      `json:"suggested_task"`
	SuggestedTaskID      ident.ID    `json:"suggested_task_id,omitempty"`
	SuggestedDescription string      `json:"suggested_description,omitempty"`
	SuggestedDeadline    string      `json:"suggested_deadline,omitempty"`
	SuggestedHours       float64     `json:"suggested_hours,omitempty"`
	Reasoning            string      `json:"reasoning,omitempty"`
}

type decomposeDoc struct {
	Tasks               []taskDoc `json:"tasks"`
	TotalEstimatedHours float64   `json:"total_estimated_hours,omitempty"`
	RecommendedTeamSize int       `json:"recommended_team_size,omitempty"`
}

type simulateDoc struct {
	Summary             string          `json:"summary"`
	ProposedTasks       []taskDoc       `json:"proposed_tasks"`
	ProposedAssignments []matchEntryDoc `json:"proposed_assignments"`
}

type applyResultDoc struct {
	Message           string `json:"message"`
	NotificationsSent int    `json:"notifications_sent"`
	TasksUpdated      int    `json:"tasks_updated"`
	TeamSize          int    `json:"team_size"`
}

type healthMetricsDoc struct {
	Progress         float64 `json:"progress"`
	ExpectedProgress float64 `json:"expected_progress"`
	DaysLeft         int     `json:"days_left"`
	RiskScore        float64 `json:"risk_score"`
	MaxLoad          float64 `json:"max_load"`
}

type healthDoc struct {
	Health  string           `json:"health"`
	Issues  []string         `json:"issues"`
	Metrics healthMetricsDoc `json:"metrics"`
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	for _, s := range []string{e.Detail, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// projectUpdateDoc is the whole-document replace payload; only set fields
// are sent.
type projectUpdateDoc struct {
	Status            *string                `json:"status,omitempty"`
	AssignedTeam      []ident.ID             `json:"assigned_team,omitempty"`
	Tasks             []taskDoc              `json:"tasks,omitempty"`
	Deadline          *string                `json:"deadline,omitempty"`
	OptimizationLog   []optimizationEventDoc `json:"optimization_history,omitempty"`
	OptimizationCycle *int                   `json:"optimization_cycles,omitempty"`
}

type projectCreateDoc struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	RequiredSkills     []requiredSkillDoc `json:"required_skills"`
	ExperienceRequired float64            `json:"experience_required"`
	Status             string             `json:"status"`
	Deadline           *string            `json:"deadline,omitempty"`
}

type matchPreviewDoc struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired float64  `json:"experience_required"`
	TeamSize           int      `json:"team_size"`
}

type replanApplyDoc struct {
	Tasks       []taskDoc       `json:"tasks"`
	Assignments []matchEntryDoc `json:"assignments"`
}

// --- conversions ---

func (d taskDoc) toDomain() domain.Task {
	t := domain.Task{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Priority:       domain.NormalizePriority(d.Priority),
		EstimatedHours: roundHours(d.EstimatedHours),
		RequiredSkills: d.RequiredSkills,
		Deadline:       d.Deadline,
		Status:         taskStatus(d.Status),
		AssignedTo:     d.AssignedTo,
	}
	t.EnsureID()
	return t
}

func taskToDoc(t domain.Task) taskDoc {
	return taskDoc{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       string(t.Priority),
		EstimatedHours: float64(t.EstimatedHours),
		RequiredSkills: t.RequiredSkills,
		Deadline:       t.Deadline,
		Status:         string(t.Status),
		AssignedTo:     t.AssignedTo,
	}
}

func taskStatus(s string) domain.TaskStatus {
	switch domain.TaskStatus(strings.ToLower(s)) {
	case domain.TaskInProgress:
		return domain.TaskInProgress
	case domain.TaskCompleted:
		return domain.TaskCompleted
	default:
		return domain.TaskBacklog
	}
}

func roundHours(h float64) int {
	n := int(math.Round(h))
	if n < 1 {
		n = 1
	}
	return n
}

func (d projectDoc) toDomain() domain.Project {
	id := d.ID
	if id.IsZero() {
		id = d.AltID
	}
	p := domain.Project{
		ID:                 id,
		Title:              d.Title,
		Description:        d.Description,
		ExperienceRequired: d.ExperienceRequired,
		Status:             projectStatus(d.Status),
		AssignedTeam:       d.AssignedTeam,
		OptimizationCycle:  d.OptimizationCycle,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.Deadline != nil && *d.Deadline != "" {
		if ts, err := time.Parse("2006-01-02", *d.Deadline); err == nil {
			p.Deadline = &ts
		}
	}
	for _, rs := range d.RequiredSkills {
		p.RequiredSkills = append(p.RequiredSkills, domain.RequiredSkill{
			Name:  rs.SkillName,
			Level: domain.SkillLevel(rs.Level),
		})
	}
	for _, td := range d.Tasks {
		p.Tasks = append(p.Tasks, td.toDomain())
	}
	for _, ev := range d.OptimizationLog {
		p.OptimizationLog = append(p.OptimizationLog, domain.OptimizationEvent(ev))
	}
	return p
}

func projectStatus(s string) domain.ProjectStatus {
	if domain.ProjectStatus(strings.ToLower(s)) == domain.ProjectFinalized {
		return domain.ProjectFinalized
	}
	return domain.ProjectDraft
}

func (d profileDoc) toDomain() domain.EmployeeProfile {
	id := d.ID
	if id.IsZero() {
		id = d.AltID
	}
	return domain.EmployeeProfile{
		ID:             id,
		FullName:       d.FullName,
		Specialization: d.Specialization,
		AvatarURL:      d.AvatarURL,
	}
}

func skillsToDomain(docs []skillDoc) []domain.SkillInfo {
	out := make([]domain.SkillInfo, 0, len(docs))
	for _, s := range docs {
		out = append(out, domain.SkillInfo{
			Name:            s.SkillName,
			Level:           domain.SkillLevel(s.Level),
			YearsExperience: s.YearsExperience,
		})
	}
	return out
}

func (d teamEntryDoc) toDomain() domain.TeamMember {
	return domain.TeamMember{
		Profile: d.Profile.toDomain(),
		Skills:  skillsToDomain(d.Skills),
	}
}

// candidateID returns the match entry's employee identity, from whichever
// field the service populated.
func (d matchEntryDoc) candidateID() ident.ID {
	if d.Profile != nil {
		if !d.Profile.ID.IsZero() {
			return d.Profile.ID
		}
		if !d.Profile.AltID.IsZero() {
			return d.Profile.AltID
		}
	}
	return d.EmployeeID
}

func (d matchEntryDoc) score() float64 {
	if d.Score != nil {
		return *d.Score
	}
	if d.MatchScore != nil {
		return *d.MatchScore
	}
	return 0
}

// MatchEntry is the decoded matching-service result for one candidate.
type MatchEntry struct {
	Profile       domain.EmployeeProfile
	Skills        []domain.SkillInfo
	Score         float64
	MatchedSkills []string
	Assignment    domain.Assignment
}

func (d matchEntryDoc) toDomain() MatchEntry {
	entry := MatchEntry{
		Score:         d.score(),
		MatchedSkills: d.MatchedSkills,
		Skills:        skillsToDomain(d.Skills),
		Assignment: domain.Assignment{
			TaskID:         d.SuggestedTaskID,
			TaskTitle:      d.SuggestedTask,
			Description:    d.SuggestedDescription,
			Reasoning:      d.Reasoning,
			SuggestedHours: roundHours(d.SuggestedHours),
			Deadline:       d.SuggestedDeadline,
			MatchedSkills:  d.MatchedSkills,
			Score:          d.score(),
		},
	}
	if d.Profile != nil {
		entry.Profile = d.Profile.toDomain()
	}
	if entry.Profile.ID.IsZero() {
		entry.Profile.ID = d.EmployeeID
	}
	if entry.Assignment.Deadline == "" {
		entry.Assignment.Deadline = domain.DeadlineTBD
	}
	return entry
}

func matchEntryToDoc(m domain.TeamMember) matchEntryDoc {
	p := profileDoc{
		ID:             m.Profile.ID,
		FullName:       m.Profile.FullName,
		Specialization: m.Profile.Specialization,
		AvatarURL:      m.Profile.AvatarURL,
	}
	doc := matchEntryDoc{
		Profile:    &p,
		EmployeeID: m.Profile.ID,
	}
	if a := m.Assignment; a != nil {
		score := a.Score
		doc.Score = &score
		doc.MatchedSkills = a.MatchedSkills
		doc.SuggestedTask = a.TaskTitle
		doc.SuggestedTaskID = a.TaskID
		doc.SuggestedDescription = a.Description
		doc.SuggestedDeadline = a.Deadline
		doc.SuggestedHours = float64(a.SuggestedHours)
		doc.Reasoning = a.Reasoning
	}
	return doc
}
