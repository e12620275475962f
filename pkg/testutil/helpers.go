// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
)

// FindRow finds the bundle row for symbol.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(bundle *planner.Bundle, symbol string) *planner.BundleRow {
	if bundle == nil {
		return nil
	}
	for i := range bundle.Rows {
		if bundle.Rows[i].Symbol == symbol {
			return &bundle.Rows[i]
		}
	}
	return nil
}

// CountAssignments returns how many slot groups went to each candidate.
func CountAssignments(layout *planner.Layout) map[string]int {
	counts := make(map[string]int)
	if layout == nil {
		return counts
	}
	for _, a := range layout.Assignments {
		counts[a.CandidateIdentifier]++
	}
	return counts
}
