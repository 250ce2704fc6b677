package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Error types ---

func TestDistributeError_ErrorString(t *testing.T) {
	err := &DistributeError{
		Code:    DistributeErrEmptyPool,
		Message: "no unassigned tasks to distribute",
	}
	assert.Equal(t, "EMPTY_POOL: no unassigned tasks to distribute", err.Error())
}

func TestReplanError_ErrorString(t *testing.T) {
	err := &ReplanError{
		Code:    ReplanErrNotStaged,
		Message: "simulate and stage a draft first",
	}
	assert.Equal(t, "NOT_STAGED: simulate and stage a draft first", err.Error())
}

func TestFinalizeError_ErrorString(t *testing.T) {
	err := &FinalizeError{
		Code:    FinalizeErrEmptyRoster,
		Message: "cannot finalize with an empty roster",
	}
	assert.Equal(t, "EMPTY_ROSTER: cannot finalize with an empty roster", err.Error())
}

func TestTalentError_ErrorString(t *testing.T) {
	err := &TalentError{
		Code:    TalentErrNotFound,
		Message: "no such candidate",
	}
	assert.Equal(t, "NOT_FOUND: no such candidate", err.Error())
}

// --- Error codes are distinct ---

func TestDistributeErrorCodes_AreDistinct(t *testing.T) {
	codes := []DistributeErrorCode{
		DistributeErrOpInFlight,
		DistributeErrStagedDraft,
		DistributeErrEmptyPool,
		DistributeErrFinalized,
		DistributeErrBackend,
		DistributeErrNoCandidates,
	}
	seen := make(map[DistributeErrorCode]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate error code: %s", c)
		seen[c] = true
	}
}

func TestReplanErrorCodes_AreDistinct(t *testing.T) {
	codes := []ReplanErrorCode{
		ReplanErrOpInFlight,
		ReplanErrNoDraft,
		ReplanErrNotStaged,
		ReplanErrAlreadyStaged,
		ReplanErrFinalized,
		ReplanErrBackend,
	}
	seen := make(map[ReplanErrorCode]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate error code: %s", c)
		seen[c] = true
	}
}
