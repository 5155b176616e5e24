package integrators

import "github.com/san-kum/dotfield/internal/field"

// Advance runs one full step for a body: gravity, velocity, position and,
// while resetting, the completion check. An invalid extent leaves the body
// where it is.
func Advance(b field.Body, ptr field.Pointer, ext field.Extent, p Params) field.Body {
	if !ext.Valid() {
		b.Gravity = field.Vec{}
		return b
	}
	if b.Resetting && Degenerate(b) {
		return Complete(b)
	}

	b.Gravity = Gravity(b, ptr, ext, p)
	b.Vel = Velocity(b, p)
	b.Pos, b.Vel = Position(b.Pos, b.Vel, b.Restitution, ext.Bounds(p.Padding))

	if b.Resetting && Settled(b) {
		return Complete(b)
	}
	return b
}

// Contain clamps a position into bounds without touching velocity.
func Contain(pos field.Vec, bounds field.Bounds) field.Vec {
	pos.X = clampRange(pos.X, bounds.Min.X, bounds.Max.X)
	pos.Y = clampRange(pos.Y, bounds.Min.Y, bounds.Max.Y)
	return pos
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
