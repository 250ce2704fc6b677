package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/health"
)

func TestFormatHealth_CriticalRecommendsReplan(t *testing.T) {
	verdict := health.ClassifyResult{
		State:  domain.HealthCritical,
		Action: domain.ActionReplan,
		Issues: []string{"3 tasks behind schedule"},
		Metrics: backend.HealthMetrics{
			Progress:         20,
			ExpectedProgress: 55,
			DaysLeft:         12,
			RiskScore:        0.8,
		},
	}

	out := FormatHealth(verdict)

	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "3 tasks behind schedule")
	assert.Contains(t, out, "crewctl replan")
}

func TestFormatHealth_DerivedStateIsMarked(t *testing.T) {
	verdict := health.ClassifyResult{
		State:   domain.HealthStable,
		Derived: true,
	}

	out := FormatHealth(verdict)

	assert.Contains(t, out, "STABLE")
	assert.Contains(t, out, "derived")
}
