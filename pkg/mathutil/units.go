// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
)

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// CeilUnits converts a reward amount into the whole number of units needed
// to cover it. Quotients within UnitEpsilon of a positive integer are snapped
// so that floating point noise does not add a spurious extra unit. Any
// positive amount needs at least one unit.
func CeilUnits(amount, perUnit float64) float64 {
	if perUnit <= 0 || amount <= 0 {
		return 0
	}
	q := amount / perUnit
	if r := math.Round(q); r >= 1 && math.Abs(q-r) <= constants.UnitEpsilon {
		return r
	}
	return math.Max(1, math.Ceil(q))
}

// WholeUnits returns the number of whole units available in a possibly
// fractional cap.
func WholeUnits(val float64) float64 {
	if val <= 0 || math.IsNaN(val) {
		return 0
	}
	if math.IsInf(val, 1) {
		return val
	}
	if r := math.Round(val); math.Abs(val-r) <= constants.UnitEpsilon {
		return r
	}
	return math.Floor(val)
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
