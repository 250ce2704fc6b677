package contract

import (
	"time"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// SessionStatus is the operator-facing view of one open session.
type SessionStatus struct {
	ProjectID    ident.ID
	Title        string
	Status       domain.ProjectStatus
	Deadline     *time.Time
	PoolSize     int
	TeamSize     int
	AssignedSize int
	DraftState   domain.DraftState
	Cycle        int
	SyncedAt     time.Time
}

type ProjectErrorCode string

const (
	ProjectErrInvalidInput ProjectErrorCode = "INVALID_INPUT"
	ProjectErrNotFound     ProjectErrorCode = "NOT_FOUND"
	ProjectErrBackend      ProjectErrorCode = "BACKEND"
)

type ProjectError struct {
	Code    ProjectErrorCode
	Message string
}

func (e *ProjectError) Error() string {
	return string(e.Code) + ": " + e.Message
}
