package field

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in canvas pixel space.
type Vec = r2.Vec

// ID identifies a particle within one setup of a world.
type ID uint32

// ResetState is the reset controller state of a particle.
type ResetState uint8

const (
	Free ResetState = iota
	Resetting
)

func (s ResetState) String() string {
	switch s {
	case Free:
		return "free"
	case Resetting:
		return "resetting"
	}
	return "unknown"
}

// Pointer is the normalized pointer input read once per step.
// X and Y are bounded to [-1, 1].
type Pointer struct {
	X, Y    float64
	Pressed bool
}

// Extent is the canvas size in pixels.
type Extent struct {
	Width, Height float64
}

func (e Extent) Valid() bool {
	return e.Width > 0 && e.Height > 0 && !math.IsInf(e.Width, 0) && !math.IsInf(e.Height, 0)
}

func (e Extent) Center() Vec {
	return Vec{X: e.Width / 2, Y: e.Height / 2}
}

// MaxPadding bounds the padding fraction from above. Beyond it the lattice
// would place rest positions outside the containment region.
const MaxPadding = 0.5

// Bounds is the axis-aligned region a particle center may occupy.
type Bounds struct {
	Min, Max Vec
}

// Bounds returns the containment region for a padding fraction: half the
// padding on each side of each axis.
func (e Extent) Bounds(padding float64) Bounds {
	px, py := padding*e.Width/2, padding*e.Height/2
	return Bounds{
		Min: Vec{X: px, Y: py},
		Max: Vec{X: e.Width - px, Y: e.Height - py},
	}
}

func (b Bounds) Contains(v Vec) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X && v.Y >= b.Min.Y && v.Y <= b.Max.Y
}

// Body is the numeric state of one particle as seen by the integrators.
type Body struct {
	Pos       Vec
	Vel       Vec
	Gravity   Vec
	Rest      Vec
	ResetFrom Vec

	Friction    float64
	Restitution float64
	Resetting   bool
}

func (b Body) IsValid() bool {
	for _, v := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Gravity.X, b.Gravity.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Painter is a drawing target for particles.
type Painter interface {
	Circle(center Vec, radius float64, c colorful.Color)
}
