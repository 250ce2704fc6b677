package contract

import "github.com/lvoisin/crewctl/internal/ident"

// FinalizeResponse reports a persisted finalization.
type FinalizeResponse struct {
	ProjectID    ident.ID
	TeamSize     int
	TasksWritten int
}

type FinalizeErrorCode string

const (
	FinalizeErrOpInFlight       FinalizeErrorCode = "OP_IN_FLIGHT"
	FinalizeErrEmptyRoster      FinalizeErrorCode = "EMPTY_ROSTER"
	FinalizeErrStagedDraft      FinalizeErrorCode = "STAGED_DRAFT"
	FinalizeErrAlreadyFinalized FinalizeErrorCode = "ALREADY_FINALIZED"
	FinalizeErrBackend          FinalizeErrorCode = "BACKEND"
)

type FinalizeError struct {
	Code    FinalizeErrorCode
	Message string
}

func (e *FinalizeError) Error() string {
	return string(e.Code) + ": " + e.Message
}
