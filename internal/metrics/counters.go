package metrics

import "github.com/san-kum/dotfield/internal/world"

// Resetting counts particles in the Resetting state. Value is the peak.
type Resetting struct {
	last, peak float64
}

func NewResetting() *Resetting { return &Resetting{} }

func (r *Resetting) Name() string   { return "resetting" }
func (r *Resetting) Last() float64  { return r.last }
func (r *Resetting) Value() float64 { return r.peak }
func (r *Resetting) Reset()         { r.last, r.peak = 0, 0 }

func (r *Resetting) Observe(f *world.Frame) {
	r.last = float64(f.Report.Resetting)
	if r.last > r.peak {
		r.peak = r.last
	}
}

// Collisions counts resolved pairs per frame. Value is the running total.
type Collisions struct {
	last, total float64
}

func NewCollisions() *Collisions { return &Collisions{} }

func (c *Collisions) Name() string   { return "collisions" }
func (c *Collisions) Last() float64  { return c.last }
func (c *Collisions) Value() float64 { return c.total }
func (c *Collisions) Reset()         { c.last, c.total = 0, 0 }

func (c *Collisions) Observe(f *world.Frame) {
	c.last = float64(f.Report.Collisions)
	c.total += c.last
}

// Skipped counts particle updates dropped because the kernel failed.
type Skipped struct {
	last, total float64
}

func NewSkipped() *Skipped { return &Skipped{} }

func (s *Skipped) Name() string   { return "skipped" }
func (s *Skipped) Last() float64  { return s.last }
func (s *Skipped) Value() float64 { return s.total }
func (s *Skipped) Reset()         { s.last, s.total = 0, 0 }

func (s *Skipped) Observe(f *world.Frame) {
	s.last = float64(len(f.Report.Errors))
	s.total += s.last
}
