package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/testutil"
)

func TestFormatDistribution_ListsHiredAndSkipped(t *testing.T) {
	resp := &contract.DistributeResponse{
		Hired: []contract.HiredCandidate{
			{
				Member: domain.TeamMember{
					Profile: domain.EmployeeProfile{ID: "e1", FullName: "Dana Cole"},
					Assignment: &domain.Assignment{
						TaskTitle: "API design",
					},
				},
				Score:         12.5,
				Reasoning:     "strongest backend profile",
				MatchedSkills: []string{"Go", "SQL"},
			},
		},
		Skipped: []contract.SkippedCandidate{
			{Name: "Sam Reyes", Reason: "zero score"},
		},
		PoolRemaining: 2,
	}

	out := FormatDistribution(resp, false)

	assert.Contains(t, out, "Dana Cole")
	assert.Contains(t, out, "API design")
	assert.Contains(t, out, "strongest backend profile")
	assert.Contains(t, out, "Sam Reyes")
	assert.Contains(t, out, "zero score")
	assert.Contains(t, out, "2 task(s) left")
}

func TestFormatDistribution_PreviewOmitsPoolLine(t *testing.T) {
	resp := &contract.DistributeResponse{PoolRemaining: 2}

	out := FormatDistribution(resp, true)

	assert.Contains(t, out, "preview")
	assert.NotContains(t, out, "left in the pool")
}

func TestFormatMatchPreview_Empty(t *testing.T) {
	out := FormatMatchPreview(nil)

	assert.Contains(t, out, "No matching candidates")
}

func TestFormatSimulation_ShowsSummaryAndDelta(t *testing.T) {
	resp := &contract.SimulateResponse{
		Summary: "Rebalance around the missed API milestone",
		ProposedTasks: []domain.Task{
			testutil.NewTestTask("API design"),
		},
		ProposedRoster: []domain.TeamMember{
			testutil.NewTestMember("e1", "Dana Cole"),
		},
	}

	out := FormatSimulation(resp)

	assert.Contains(t, out, "Rebalance around the missed API milestone")
	assert.Contains(t, out, "API design")
	assert.Contains(t, out, "Dana Cole")
}
