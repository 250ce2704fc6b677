// Package contract defines the request/response shapes and typed errors
// of the operator-facing services. Error codes are stable strings so the
// CLI (and the journal) can switch on them without string matching.
package contract

import (
	"github.com/lvoisin/crewctl/internal/domain"
)

// DistributeRequest asks the matching agent to staff the current pool.
type DistributeRequest struct {
	// TeamSize caps how many candidates the agent may hire. Zero lets the
	// backend choose.
	TeamSize int
	// Preview runs matching without touching the working stores.
	Preview bool
}

// HiredCandidate is one accepted match.
type HiredCandidate struct {
	Member        domain.TeamMember
	Score         float64
	Reasoning     string
	MatchedSkills []string
	// PoolTaskRemoved is set when the suggested task was reconciled
	// against the pool and removed.
	PoolTaskRemoved bool
}

// SkippedCandidate is a match entry the distribution discarded.
type SkippedCandidate struct {
	Name   string
	Reason string
}

// DistributeResponse reports one distribution round.
type DistributeResponse struct {
	Hired   []HiredCandidate
	Skipped []SkippedCandidate
	// PoolRemaining is the pool size after reconciliation.
	PoolRemaining int
}

type DistributeErrorCode string

const (
	DistributeErrOpInFlight   DistributeErrorCode = "OP_IN_FLIGHT"
	DistributeErrStagedDraft  DistributeErrorCode = "STAGED_DRAFT"
	DistributeErrEmptyPool    DistributeErrorCode = "EMPTY_POOL"
	DistributeErrFinalized    DistributeErrorCode = "PROJECT_FINALIZED"
	DistributeErrBackend      DistributeErrorCode = "BACKEND"
	DistributeErrNoCandidates DistributeErrorCode = "NO_CANDIDATES"
)

type DistributeError struct {
	Code    DistributeErrorCode
	Message string
}

func (e *DistributeError) Error() string {
	return string(e.Code) + ": " + e.Message
}
