package metrics

import (
	"github.com/san-kum/dotfield/internal/world"
	"gonum.org/v1/gonum/spatial/r2"
)

// Displacement is the mean distance of particles from rest. Value is the
// largest mean seen.
type Displacement struct {
	name string
	last float64
	peak float64
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string   { return d.name }
func (d *Displacement) Last() float64  { return d.last }
func (d *Displacement) Value() float64 { return d.peak }
func (d *Displacement) Reset()         { d.last, d.peak = 0, 0 }

func (d *Displacement) Observe(f *world.Frame) {
	if len(f.Particles) == 0 {
		d.last = 0
		return
	}
	sum := 0.0
	for _, p := range f.Particles {
		sum += r2.Norm(p.Displacement())
	}
	d.last = sum / float64(len(f.Particles))
	if d.last > d.peak {
		d.peak = d.last
	}
}
