package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
)

func TestClassify_BackendStateWins(t *testing.T) {
	res := Classify(ClassifyInput{
		Report: backend.HealthReport{
			State:   domain.HealthCritical,
			Metrics: backend.HealthMetrics{RiskScore: 0.1},
		},
	})
	assert.Equal(t, domain.HealthCritical, res.State)
	assert.Equal(t, domain.ActionReplan, res.Action)
	assert.False(t, res.Derived)
}

func TestClassify_DerivedStates(t *testing.T) {
	tests := []struct {
		name   string
		input  ClassifyInput
		want   domain.HealthState
		action domain.RecoveryAction
	}{
		{
			name:   "healthy metrics",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{Progress: 60, ExpectedProgress: 55, DaysLeft: 10}}},
			want:   domain.HealthStable,
			action: domain.ActionNone,
		},
		{
			name:   "moderate lag",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{Progress: 40, ExpectedProgress: 55, DaysLeft: 10}}},
			want:   domain.HealthWarning,
			action: domain.ActionReview,
		},
		{
			name:   "issues alone trigger a warning",
			input:  ClassifyInput{Report: backend.HealthReport{Issues: []string{"one member overloaded"}}},
			want:   domain.HealthWarning,
			action: domain.ActionReview,
		},
		{
			name:   "high risk score",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{RiskScore: 0.8, DaysLeft: 5}}},
			want:   domain.HealthCritical,
			action: domain.ActionReplan,
		},
		{
			name:   "severe progress lag",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{Progress: 20, ExpectedProgress: 60, DaysLeft: 5}}},
			want:   domain.HealthCritical,
			action: domain.ActionReplan,
		},
		{
			name:   "past deadline",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{DaysLeft: -2}}},
			want:   domain.HealthOverdue,
			action: domain.ActionRecoveryPlan,
		},
		{
			name:   "overdue tasks dominate good metrics",
			input:  ClassifyInput{Report: backend.HealthReport{Metrics: backend.HealthMetrics{Progress: 90, ExpectedProgress: 50, DaysLeft: 10}}, OverdueTasks: 1},
			want:   domain.HealthOverdue,
			action: domain.ActionRecoveryPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.input)
			assert.Equal(t, tt.want, res.State)
			assert.Equal(t, tt.action, res.Action)
			assert.True(t, res.Derived)
		})
	}
}

func TestCountOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{Title: "past due", Deadline: "2026-03-10", Status: domain.TaskInProgress},
		{Title: "done late", Deadline: "2026-03-10", Status: domain.TaskCompleted},
		{Title: "future", Deadline: "2026-04-01", Status: domain.TaskBacklog},
		{Title: "unscheduled", Deadline: "TBD", Status: domain.TaskBacklog},
		{Title: "no deadline", Status: domain.TaskBacklog},
	}
	assert.Equal(t, 1, CountOverdue(tasks, now))
}
