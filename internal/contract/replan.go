package contract

import (
	"time"

	"github.com/lvoisin/crewctl/internal/domain"
)

// Draft is one replan simulation held client-side between simulate and
// apply/discard. At most one draft exists per session.
type Draft struct {
	State       domain.DraftState
	Summary     string
	SimulatedAt time.Time

	ProposedTasks  []domain.Task
	ProposedRoster []domain.TeamMember
}

// SimulateResponse reports a completed simulation. Nothing has been
// persisted; the draft must be staged and applied to take effect.
type SimulateResponse struct {
	Summary        string
	ProposedTasks  []domain.Task
	ProposedRoster []domain.TeamMember
}

// ApplyResponse reports a committed replan.
type ApplyResponse struct {
	Message           string
	NotificationsSent int
	TasksUpdated      int
	TeamSize          int
	Cycle             int
}

type ReplanErrorCode string

const (
	ReplanErrOpInFlight    ReplanErrorCode = "OP_IN_FLIGHT"
	ReplanErrNoDraft       ReplanErrorCode = "NO_DRAFT"
	ReplanErrNotStaged     ReplanErrorCode = "NOT_STAGED"
	ReplanErrAlreadyStaged ReplanErrorCode = "ALREADY_STAGED"
	ReplanErrFinalized     ReplanErrorCode = "PROJECT_FINALIZED"
	ReplanErrBackend       ReplanErrorCode = "BACKEND"
)

type ReplanError struct {
	Code    ReplanErrorCode
	Message string
}

func (e *ReplanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
