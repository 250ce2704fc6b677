package contract

import (
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Candidate is one directory entry offered for manual hire.
type Candidate struct {
	Profile domain.EmployeeProfile
	Skills  []domain.SkillInfo
}

// HireResponse reports a manual roster addition. Added is false when the
// candidate was already rostered (a no-op, not an error).
type HireResponse struct {
	Added    bool
	Member   domain.TeamMember
	TeamSize int
}

// ReleaseResponse reports a roster removal. ReturnedTaskID is set when
// the released member's task went back to the pool.
type ReleaseResponse struct {
	ReturnedTaskID ident.ID
	TeamSize       int
}

type TalentErrorCode string

const (
	TalentErrOpInFlight  TalentErrorCode = "OP_IN_FLIGHT"
	TalentErrStagedDraft TalentErrorCode = "STAGED_DRAFT"
	TalentErrNotFound    TalentErrorCode = "NOT_FOUND"
	TalentErrFinalized   TalentErrorCode = "PROJECT_FINALIZED"
	TalentErrBackend     TalentErrorCode = "BACKEND"
)

type TalentError struct {
	Code    TalentErrorCode
	Message string
}

func (e *TalentError) Error() string {
	return string(e.Code) + ": " + e.Message
}
