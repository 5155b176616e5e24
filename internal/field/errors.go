package field

import (
	"errors"
	"fmt"
)

// Domain errors for field operations.
var (
	// ErrDegenerateExtent indicates a canvas with a non-positive side.
	ErrDegenerateExtent = errors.New("field: degenerate extent (width and height must be positive)")

	// ErrInvalidLayout indicates spacing or padding that cannot produce a lattice.
	ErrInvalidLayout = errors.New("field: invalid lattice layout")

	// ErrNonFinite indicates a NaN or Inf in particle state.
	ErrNonFinite = errors.New("field: non-finite particle state")
)

// StepError records a per-particle update that was skipped during a step.
type StepError struct {
	ID      ID
	Frame   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d particle %d: %v", e.Frame, e.ID, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
