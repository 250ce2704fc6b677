package engine

import "github.com/lvoisin/crewctl/internal/domain"

// Project returns the working copy of the project document.
func (w *Working) Project() *domain.Project { return &w.s.project }

// RecordOptimization appends an optimization event to the working project
// and bumps the cycle counter.
func (w *Working) RecordOptimization(ev domain.OptimizationEvent) {
	w.s.project.RecordOptimization(ev)
}
