package formatter

import (
	"fmt"
	"strings"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/contract"
)

// FormatDistribution renders a distribution round's outcome.
func FormatDistribution(resp *contract.DistributeResponse, preview bool) string {
	var b strings.Builder

	title := "Distribution"
	if preview {
		title = "Distribution preview"
	}
	b.WriteString(Header(title) + "\n")

	rows := make([][]string, 0, len(resp.Hired))
	for _, h := range resp.Hired {
		task := Dim("—")
		if h.Member.Assignment != nil && h.Member.Assignment.TaskTitle != "" {
			task = h.Member.Assignment.TaskTitle
		}
		rows = append(rows, []string{
			h.Member.Profile.DisplayName(),
			ScoreIndicator(h.Score),
			task,
			strings.Join(h.MatchedSkills, ", "),
		})
	}
	b.WriteString(RenderTable([]string{"Candidate", "Score", "Suggested task", "Matched skills"}, rows))

	for _, h := range resp.Hired {
		if h.Reasoning != "" {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				Dim("·"), Bold(h.Member.Profile.DisplayName()), h.Reasoning))
		}
	}

	if len(resp.Skipped) > 0 {
		b.WriteString("\n" + Dim("Skipped:") + "\n")
		for _, s := range resp.Skipped {
			b.WriteString(fmt.Sprintf("  %s (%s)\n", s.Name, Dim(s.Reason)))
		}
	}

	if !preview {
		b.WriteString(fmt.Sprintf("\n%s %d task(s) left in the pool\n", Dim("→"), resp.PoolRemaining))
	}
	return b.String()
}

// FormatMatchPreview renders raw match entries for an unsaved draft.
func FormatMatchPreview(entries []backend.MatchEntry) string {
	if len(entries) == 0 {
		return Dim("No matching candidates.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Profile.DisplayName(),
			ScoreIndicator(e.Score),
			e.Assignment.TaskTitle,
			strings.Join(e.MatchedSkills, ", "),
		})
	}
	return RenderTable([]string{"Candidate", "Score", "Suggested task", "Matched skills"}, rows)
}

// FormatSimulation renders a replan proposal for review before staging.
func FormatSimulation(resp *contract.SimulateResponse) string {
	var b strings.Builder
	b.WriteString(Header("Proposed plan") + "\n")
	if resp.Summary != "" {
		b.WriteString(resp.Summary + "\n\n")
	}

	b.WriteString(Bold("Tasks") + "\n")
	b.WriteString(FormatPool(resp.ProposedTasks))
	b.WriteString("\n" + Bold("Assignments") + "\n")
	b.WriteString(FormatRoster(resp.ProposedRoster))
	return b.String()
}
