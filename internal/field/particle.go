package field

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is one body of the lattice. Rest position, friction and
// restitution are fixed at creation.
type Particle struct {
	ID    ID
	Color colorful.Color

	body Body
}

func NewParticle(id ID, rest Vec, friction, restitution float64, c colorful.Color) *Particle {
	return &Particle{
		ID:    id,
		Color: c,
		body: Body{
			Pos:         rest,
			Rest:        rest,
			Friction:    friction,
			Restitution: restitution,
		},
	}
}

func (p *Particle) Body() Body           { return p.body }
func (p *Particle) Pos() Vec             { return p.body.Pos }
func (p *Particle) Vel() Vec             { return p.body.Vel }
func (p *Particle) Gravity() Vec         { return p.body.Gravity }
func (p *Particle) Rest() Vec            { return p.body.Rest }
func (p *Particle) ResetFrom() Vec       { return p.body.ResetFrom }
func (p *Particle) Friction() float64    { return p.body.Friction }
func (p *Particle) Restitution() float64 { return p.body.Restitution }
func (p *Particle) SetVel(v Vec)         { p.body.Vel = v }
func (p *Particle) Displacement() Vec    { return r2.Sub(p.body.Pos, p.body.Rest) }
func (p *Particle) Resetting() bool      { return p.body.Resetting }
func (p *Particle) State() ResetState {
	if p.body.Resetting {
		return Resetting
	}
	return Free
}

// Apply takes the kinematic result of an update. Rest position, reset
// origin and material constants are never taken from next.
func (p *Particle) Apply(next Body) {
	p.body.Pos = next.Pos
	p.body.Vel = next.Vel
	p.body.Gravity = next.Gravity
	p.body.Resetting = next.Resetting
}

// BeginReset enters Resetting and records the current position as the
// reset origin. A particle already resetting keeps its original origin.
func (p *Particle) BeginReset() {
	if p.body.Resetting {
		return
	}
	p.body.Resetting = true
	p.body.ResetFrom = p.body.Pos
}

// CancelReset leaves Resetting without moving the particle.
func (p *Particle) CancelReset() {
	p.body.Resetting = false
}

// Draw paints the particle as a filled circle.
func (p *Particle) Draw(dst Painter, radius float64) {
	dst.Circle(p.body.Pos, radius, p.Color)
}
