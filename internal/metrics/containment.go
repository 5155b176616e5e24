package metrics

import "github.com/san-kum/dotfield/internal/world"

// Containment is the fraction of particles inside the padded bounds. Any
// value below 1 means a particle escaped. Value is the worst frame.
type Containment struct {
	name       string
	last       float64
	worst      float64
	violations int
}

func NewContainment() *Containment {
	return &Containment{name: "containment", last: 1, worst: 1}
}

func (c *Containment) Name() string    { return c.name }
func (c *Containment) Last() float64   { return c.last }
func (c *Containment) Value() float64  { return c.worst }
func (c *Containment) Violations() int { return c.violations }

func (c *Containment) Observe(f *world.Frame) {
	if len(f.Particles) == 0 {
		c.last = 1
		return
	}
	inside := 0
	for _, p := range f.Particles {
		if f.Bounds.Contains(p.Pos()) {
			inside++
		} else {
			c.violations++
		}
	}
	c.last = float64(inside) / float64(len(f.Particles))
	if c.last < c.worst {
		c.worst = c.last
	}
}

func (c *Containment) Reset() {
	c.last, c.worst, c.violations = 1, 1, 0
}
