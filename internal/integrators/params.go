// Package integrators holds the pure per-step update functions of the
// particle field: gravity, velocity, position and reset. None of them
// mutate their inputs.
package integrators

import "fmt"

// ForceMode selects how the pointer produces gravity on a free particle.
type ForceMode string

const (
	// Displacement pulls each particle toward the pointer, proportional to
	// the distance between them.
	Displacement ForceMode = "displacement"
	// Uniform applies the same field to every particle, taken from the
	// pointer position alone.
	Uniform ForceMode = "pointer"
)

func ParseForceMode(s string) (ForceMode, error) {
	switch ForceMode(s) {
	case Displacement, Uniform:
		return ForceMode(s), nil
	case "":
		return Displacement, nil
	}
	return "", fmt.Errorf("unknown force mode: %s", s)
}

// Params are the run-wide constants read by every step.
type Params struct {
	Gravity     float64
	Multiplier  float64
	MaxVelocity float64
	Padding     float64
	Mode        ForceMode
	GateOnPress bool
}

func DefaultParams() Params {
	return Params{
		Gravity:     9.81,
		Multiplier:  0.05,
		MaxVelocity: 60,
		Padding:     0.15,
		Mode:        Displacement,
		GateOnPress: true,
	}
}

const (
	// relativeScale stretches the center-normalized particle position so
	// that the canvas edges sit at +-1.5.
	relativeScale = 3.0
	// resetPull scales the spring toward rest during a reset.
	resetPull = 100.0

	settleDistance = 1.0
	settleSpeed    = 0.1
)
