package integrators

import "github.com/san-kum/dotfield/internal/field"

// Position translates pos by vel and reflects off the bounds. A bounce
// clamps the coordinate and flips that velocity component scaled by
// restitution. Both axes may bounce in the same step.
func Position(pos, vel field.Vec, restitution float64, bounds field.Bounds) (field.Vec, field.Vec) {
	pos.X, vel.X = reflect(pos.X+vel.X, vel.X, restitution, bounds.Min.X, bounds.Max.X)
	pos.Y, vel.Y = reflect(pos.Y+vel.Y, vel.Y, restitution, bounds.Min.Y, bounds.Max.Y)
	return pos, vel
}

func reflect(x, v, restitution, lo, hi float64) (float64, float64) {
	switch {
	case x > hi:
		return hi, -v * restitution
	case x < lo:
		return lo, -v * restitution
	}
	return x, v
}
