package integrators

import (
	"math"

	"github.com/san-kum/dotfield/internal/field"
)

// Clamp limits v to [-max, max]. A non-positive max disables the limit.
func Clamp(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

// Velocity returns the velocity after one step. Free bodies accumulate
// gravity and lose a friction fraction. Resetting bodies follow the reset
// profile instead.
func Velocity(b field.Body, p Params) field.Vec {
	var v field.Vec
	if b.Resetting {
		v = ResetVelocity(b)
	} else {
		damp := 1 - b.Friction
		v = field.Vec{
			X: (b.Vel.X + b.Gravity.X) * damp,
			Y: (b.Vel.Y + b.Gravity.Y) * damp,
		}
	}
	return field.Vec{X: Clamp(v.X, p.MaxVelocity), Y: Clamp(v.Y, p.MaxVelocity)}
}

// ResetVelocity moves a body back toward rest, fast while far away and
// slower as it closes in: v = (|d| / |D|) * -d per axis with d the current
// displacement and D the displacement when the reset began.
func ResetVelocity(b field.Body) field.Vec {
	return field.Vec{
		X: resetAxis(b.Pos.X-b.Rest.X, b.ResetFrom.X-b.Rest.X),
		Y: resetAxis(b.Pos.Y-b.Rest.Y, b.ResetFrom.Y-b.Rest.Y),
	}
}

func resetAxis(d, from float64) float64 {
	ratio := 1.0
	if math.Abs(from) >= 1e-9 {
		ratio = math.Min(math.Abs(d)/math.Abs(from), 1)
	}
	return -ratio * d
}
