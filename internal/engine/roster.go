package engine

import (
	"fmt"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Roster returns the current roster.
func (w *Working) Roster() []domain.TeamMember { return w.s.roster }

// SetRoster swaps the entire roster.
func (w *Working) SetRoster(members []domain.TeamMember) {
	w.s.roster = copyRoster(members)
}

// AddMember wraps a bare employee profile into an inert roster entry.
// Duplicate adds (by normalized id) are rejected as a no-op, not an error.
// Returns false when the candidate was already rostered.
func (w *Working) AddMember(profile domain.EmployeeProfile, skills []domain.SkillInfo) bool {
	for _, m := range w.s.roster {
		if ident.Equal(m.Profile.ID.String(), profile.ID.String()) {
			return false
		}
	}
	w.s.roster = append(w.s.roster, domain.TeamMember{
		Profile: profile,
		Skills:  skills,
	})
	return true
}

// RemoveMember drops the roster entry with the given id. The member's
// assignment, if any, is returned so the caller can move the task back to
// the pool.
func (w *Working) RemoveMember(id ident.ID) (*domain.Assignment, error) {
	for i, m := range w.s.roster {
		if ident.Equal(m.Profile.ID.String(), id.String()) {
			assignment := m.Assignment
			w.s.roster = append(w.s.roster[:i], w.s.roster[i+1:]...)
			return assignment, nil
		}
	}
	return nil, fmt.Errorf("member %s not on the roster", id)
}

// HasMember reports whether the id matches a rostered member.
func (w *Working) HasMember(id ident.ID) bool {
	for _, m := range w.s.roster {
		if ident.Equal(m.Profile.ID.String(), id.String()) {
			return true
		}
	}
	return false
}

// RosterIDs returns the normalized member ids in roster order.
func (w *Working) RosterIDs() []ident.ID {
	ids := make([]ident.ID, 0, len(w.s.roster))
	for _, m := range w.s.roster {
		ids = append(ids, m.Profile.ID)
	}
	return ids
}
