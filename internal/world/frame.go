package world

import "github.com/san-kum/dotfield/internal/field"

// Report summarizes one step.
type Report struct {
	Frame      int
	Collisions int
	Resetting  int
	// Errors holds one *field.StepError per skipped particle.
	Errors []error
}

// Frame is the view of the world handed to metrics and observers after a
// step. Particles must not be retained past the call.
type Frame struct {
	Index     int
	Extent    field.Extent
	Bounds    field.Bounds
	Pointer   field.Pointer
	Radius    float64
	Particles []*field.Particle
	Report    Report
}

// Metric reduces frames to numbers. Last is the value for the most recent
// frame and Value the aggregate since Reset.
type Metric interface {
	Name() string
	Observe(f *Frame)
	Last() float64
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnStep(f *Frame) { fn(f) }
