package formatter

import (
	"github.com/lvoisin/crewctl/internal/service"
)

// FormatJournal renders recent journal entries, newest first.
func FormatJournal(entries []service.JournalEntry) string {
	if len(entries) == 0 {
		return Dim("Journal is empty.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		project := e.ProjectID
		if project == "" {
			project = "—"
		}
		if len(project) > 12 {
			project = project[:12]
		}
		rows = append(rows, []string{
			e.At.Local().Format("2006-01-02 15:04"),
			StyleBlue.Render(e.Action),
			Dim(project),
			e.Detail,
		})
	}
	return RenderTable([]string{"When", "Action", "Project", "Detail"}, rows)
}
