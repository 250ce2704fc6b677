// Package health classifies project health and maps each state to the
// recovery action the operator should take next.
package health

import (
	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
)

// ClassifyInput carries everything the derived classification needs when
// the backend omits its own state.
type ClassifyInput struct {
	Report backend.HealthReport
	// OverdueTasks counts unfinished tasks whose deadline has passed.
	OverdueTasks int
}

// ClassifyResult is the resolved health verdict.
type ClassifyResult struct {
	State   domain.HealthState
	Action  domain.RecoveryAction
	Issues  []string
	Derived bool
	Metrics backend.HealthMetrics
}

// Classify resolves the health state for a report. The backend's own
// classification wins when present; otherwise the state is derived from
// the metrics. The recovery action follows the state unconditionally.
func Classify(input ClassifyInput) ClassifyResult {
	state := input.Report.State
	derived := false
	if state == "" {
		state = deriveState(input)
		derived = true
	}
	return ClassifyResult{
		State:   state,
		Action:  ActionFor(state),
		Issues:  input.Report.Issues,
		Derived: derived,
		Metrics: input.Report.Metrics,
	}
}

// deriveState reconstructs a classification from the raw metrics.
// Overdue work dominates every other signal.
func deriveState(input ClassifyInput) domain.HealthState {
	m := input.Report.Metrics

	if input.OverdueTasks > 0 || m.DaysLeft < 0 {
		return domain.HealthOverdue
	}

	lag := m.ExpectedProgress - m.Progress

	switch {
	case m.RiskScore >= 0.75 || lag >= 30:
		return domain.HealthCritical
	case m.RiskScore >= 0.4 || lag >= 10 || len(input.Report.Issues) > 0:
		return domain.HealthWarning
	default:
		return domain.HealthStable
	}
}

// ActionFor maps a health state to its recovery action. Stable projects
// need none.
func ActionFor(state domain.HealthState) domain.RecoveryAction {
	switch state {
	case domain.HealthWarning:
		return domain.ActionReview
	case domain.HealthCritical:
		return domain.ActionReplan
	case domain.HealthOverdue:
		return domain.ActionRecoveryPlan
	default:
		return domain.ActionNone
	}
}
