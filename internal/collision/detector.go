package collision

import (
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/integrators"
	"gonum.org/v1/gonum/spatial/r2"
)

// Colliding reports whether two particles will overlap after one more step
// at their current velocities.
func Colliding(p1, v1, p2, v2 field.Vec, radius float64) bool {
	next1 := r2.Add(p1, v1)
	next2 := r2.Add(p2, v2)
	return r2.Norm(r2.Sub(next1, next2)) < 2*radius
}

// Collide exchanges the velocities of a and b if they are about to touch.
// Equal masses make an elastic collision a plain swap on each axis.
func Collide(a, b *field.Particle, radius float64) bool {
	if !Colliding(a.Pos(), a.Vel(), b.Pos(), b.Vel(), radius) {
		return false
	}
	va, vb := a.Vel(), b.Vel()
	a.SetVel(vb)
	b.SetVel(va)
	return true
}

// Detector runs broad and narrow phase over a particle set.
type Detector struct {
	radius      float64
	maxVelocity float64
	grid        *Grid
	positions   []field.Vec
}

func NewDetector(radius, maxVelocity float64) *Detector {
	return &Detector{
		radius:      radius,
		maxVelocity: maxVelocity,
		grid:        NewGrid(radius),
	}
}

func (d *Detector) Grid() *Grid { return d.grid }

// Resolve rebuilds the grid from current positions and resolves every
// colliding pair once. Resetting particles pass through everything.
// Touched particles are clamped back into bounds and to the velocity
// limit. It returns the number of resolved pairs.
func (d *Detector) Resolve(particles []*field.Particle, bounds field.Bounds) int {
	d.positions = d.positions[:0]
	for _, p := range particles {
		d.positions = append(d.positions, p.Pos())
	}
	d.grid.Rebuild(d.positions)

	resolved := 0
	d.grid.Candidates(func(i, j int) {
		a, b := particles[i], particles[j]
		if a.Resetting() || b.Resetting() {
			return
		}
		if !Collide(a, b, d.radius) {
			return
		}
		d.reclamp(a, bounds)
		d.reclamp(b, bounds)
		resolved++
	})
	return resolved
}

func (d *Detector) reclamp(p *field.Particle, bounds field.Bounds) {
	body := p.Body()
	body.Pos = integrators.Contain(body.Pos, bounds)
	body.Vel = field.Vec{
		X: integrators.Clamp(body.Vel.X, d.maxVelocity),
		Y: integrators.Clamp(body.Vel.Y, d.maxVelocity),
	}
	p.Apply(body)
}
