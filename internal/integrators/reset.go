package integrators

import (
	"math"

	"github.com/san-kum/dotfield/internal/field"
)

// Settled reports whether a resetting body is close enough to rest to stop.
func Settled(b field.Body) bool {
	d := field.Vec{X: b.Pos.X - b.Rest.X, Y: b.Pos.Y - b.Rest.Y}
	return math.Abs(d.X) < settleDistance && math.Abs(d.Y) < settleDistance &&
		math.Abs(b.Vel.X) < settleSpeed && math.Abs(b.Vel.Y) < settleSpeed
}

// Degenerate reports whether a reset has no distance to cover.
func Degenerate(b field.Body) bool {
	return b.ResetFrom == b.Rest
}

// Complete ends a reset: the body snaps to rest with no motion.
func Complete(b field.Body) field.Body {
	b.Resetting = false
	b.Pos = b.Rest
	b.Vel = field.Vec{}
	b.Gravity = field.Vec{}
	return b
}
