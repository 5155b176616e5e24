package metrics

import "github.com/san-kum/dotfield/internal/world"

// KineticEnergy is the total kinetic energy of the field for unit masses.
// Value is the mean over observed frames.
type KineticEnergy struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic"}
}

func (k *KineticEnergy) Name() string  { return k.name }
func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Observe(f *world.Frame) {
	e := 0.0
	for _, p := range f.Particles {
		v := p.Vel()
		e += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
	k.last = e
	k.total += e
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.last, k.total, k.samples = 0, 0, 0
}
