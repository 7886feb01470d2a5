package engine

import "errors"

// PlacementError is recoverable by operator intervention (retry with an
// explicit downstream sponsor).
type PlacementError struct {
	Reason string
}

func (e *PlacementError) Error() string {
	return "placement." + e.Reason
}

var ErrNoAvailableSlot = &PlacementError{Reason: "no_available_slot"}

// InvariantViolation is fatal: it aborts the pipeline run and is surfaced to
// the operator, never silently clamped.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "engine.invariant_violation: " + e.Detail
}

// ErrVersionConflict is returned by Store.UpdateNode when the optimistic
// guard misses; callers retry a bounded number of times before surfacing it.
var ErrVersionConflict = errors.New("engine.version_conflict")

var ErrNotFound = errors.New("engine.not_found")
