package integrators

import (
	"math"

	"github.com/san-kum/dotfield/internal/field"
)

// Aspect returns the per-axis aspect correction for an extent. The longer
// axis is scaled up, the shorter one is left at 1.
func Aspect(ext field.Extent) field.Vec {
	if !ext.Valid() {
		return field.Vec{X: 1, Y: 1}
	}
	return field.Vec{
		X: math.Max(ext.Width/ext.Height, 1),
		Y: math.Max(ext.Height/ext.Width, 1),
	}
}

// Relative returns a canvas position normalized around the center, in the
// same frame as the pointer but stretched by relativeScale.
func Relative(pos field.Vec, ext field.Extent) field.Vec {
	if !ext.Valid() {
		return field.Vec{}
	}
	return field.Vec{
		X: (pos.X - ext.Width/2) / ext.Width * relativeScale,
		Y: (pos.Y - ext.Height/2) / ext.Height * relativeScale,
	}
}

// Gravity computes the acceleration for one step. A resetting body is
// pulled toward its rest position and ignores the pointer.
func Gravity(b field.Body, ptr field.Pointer, ext field.Extent, p Params) field.Vec {
	if !ext.Valid() {
		return field.Vec{}
	}
	if b.Resetting {
		return resetGravity(b, ext, p)
	}
	if p.GateOnPress && !ptr.Pressed {
		return field.Vec{}
	}

	aspect := Aspect(ext)
	k := p.Gravity * p.Multiplier

	var dir field.Vec
	switch p.Mode {
	case Uniform:
		dir = field.Vec{X: ptr.X, Y: ptr.Y}
	default:
		rel := Relative(b.Pos, ext)
		dir = field.Vec{X: ptr.X - rel.X, Y: ptr.Y - rel.Y}
	}
	return field.Vec{X: k * aspect.X * dir.X, Y: k * aspect.Y * dir.Y}
}

func resetGravity(b field.Body, ext field.Extent, p Params) field.Vec {
	k := p.Gravity * p.Multiplier * resetPull
	return field.Vec{
		X: k * (b.Rest.X - b.Pos.X) / ext.Width,
		Y: k * (b.Rest.Y - b.Pos.Y) / ext.Height,
	}
}
