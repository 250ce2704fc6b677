package formatter

import (
	"fmt"
	"strings"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/health"
)

// recoveryHint maps each recovery action to operator guidance.
func recoveryHint(action domain.RecoveryAction) string {
	switch action {
	case domain.ActionReview:
		return "review the optimization history (crewctl log)"
	case domain.ActionReplan:
		return "run a replanning cycle (crewctl replan)"
	case domain.ActionRecoveryPlan:
		return "simulate and apply a recovery plan (crewctl replan)"
	default:
		return ""
	}
}

// FormatHealth renders a classified health verdict.
func FormatHealth(verdict health.ClassifyResult) string {
	var b strings.Builder
	b.WriteString(Header("Project health") + "\n")
	b.WriteString(HealthIndicator(verdict.State))
	if verdict.Derived {
		b.WriteString(" " + Dim("(derived from metrics)"))
	}
	b.WriteString("\n\n")

	m := verdict.Metrics
	b.WriteString(fmt.Sprintf("%s %.0f%% (expected %.0f%%)\n", Dim("Progress:"), m.Progress, m.ExpectedProgress))
	b.WriteString(fmt.Sprintf("%s %d\n", Dim("Days left:"), m.DaysLeft))
	b.WriteString(fmt.Sprintf("%s %.2f\n", Dim("Risk score:"), m.RiskScore))
	if m.MaxLoad > 0 {
		b.WriteString(fmt.Sprintf("%s %.1f tasks\n", Dim("Heaviest load:"), m.MaxLoad))
	}

	if len(verdict.Issues) > 0 {
		b.WriteString("\n" + Bold("Issues") + "\n")
		for _, issue := range verdict.Issues {
			b.WriteString("  " + StyleYellow.Render("!") + " " + issue + "\n")
		}
	}

	if hint := recoveryHint(verdict.Action); hint != "" {
		b.WriteString("\n" + Dim("Recommended:") + " " + hint + "\n")
	}
	return b.String()
}
