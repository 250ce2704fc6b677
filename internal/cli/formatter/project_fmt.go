package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
)

// FormatProjectList renders the project listing table.
func FormatProjectList(projects []domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}

	rows := make([][]string, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		deadline := Dim("—")
		if p.Deadline != nil {
			deadline = p.Deadline.Format("2006-01-02")
		}
		status := string(p.Status)
		if p.Finalized() {
			status = StyleGreen.Render(status)
		}
		rows = append(rows, []string{
			p.DisplayID(),
			p.Title,
			status,
			strconv.Itoa(len(p.Tasks)),
			deadline,
		})
	}
	return RenderTable([]string{"ID", "Title", "Status", "Tasks", "Deadline"}, rows)
}

// FormatStatus renders the session status view.
func FormatStatus(view contract.SessionStatus) string {
	var b strings.Builder
	b.WriteString(Header(view.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Project:"), view.ProjectID.String()))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), string(view.Status)))
	if view.Deadline != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Deadline:"), view.Deadline.Format("2006-01-02")))
	}
	b.WriteString(fmt.Sprintf("%s %d unassigned / team of %d (%d with work)\n",
		Dim("Stores:"), view.PoolSize, view.TeamSize, view.AssignedSize))
	if view.Cycle > 0 {
		b.WriteString(fmt.Sprintf("%s %d\n", Dim("Optimization cycles:"), view.Cycle))
	}
	if view.DraftState != domain.DraftIdle {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Draft:"), StyleYellow.Render(string(view.DraftState))))
	}
	return b.String()
}

// FormatPool renders the task pool table.
func FormatPool(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("Task pool is empty.") + "\n"
	}

	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Title,
			PriorityColor(t.Priority).Render(string(t.Priority)),
			strconv.Itoa(t.EstimatedHours) + "h",
			t.DisplayDeadline(),
		})
	}
	return RenderTable([]string{"#", "Task", "Priority", "Est", "Deadline"}, rows)
}

// FormatRoster renders the team roster table.
func FormatRoster(members []domain.TeamMember) string {
	if len(members) == 0 {
		return Dim("Roster is empty.") + "\n"
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		task := Dim("—")
		hours := ""
		if m.Assignment != nil {
			task = m.Assignment.TaskTitle
			hours = strconv.Itoa(m.Assignment.SuggestedHours) + "h"
		}
		rows = append(rows, []string{
			m.Profile.ID.String(),
			m.Profile.DisplayName(),
			strings.Join(m.SkillNames(), ", "),
			task,
			hours,
		})
	}
	return RenderTable([]string{"ID", "Member", "Skills", "Assigned task", "Est"}, rows)
}
