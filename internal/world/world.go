package world

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/dotfield/internal/collision"
	"github.com/san-kum/dotfield/internal/compute"
	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/integrators"
	"github.com/san-kum/dotfield/internal/palette"
	"github.com/san-kum/dotfield/internal/pointer"
	"go.uber.org/zap"
)

type World struct {
	cfg      config.Config
	params   integrators.Params
	log      *zap.Logger
	kernel   compute.Kernel
	detector *collision.Detector
	pointer  *pointer.Model
	palette  *palette.Palette

	extent    field.Extent
	bounds    field.Bounds
	particles []*field.Particle
	frame     int
	in        []float64

	metrics   []Metric
	observers []Observer
}

type Option func(*World)

// WithKernel replaces the configured compute backend.
func WithKernel(k compute.Kernel) Option {
	return func(w *World) { w.kernel = k }
}

// WithPointer replaces the pointer model, e.g. to inject a clock.
func WithPointer(m *pointer.Model) Option {
	return func(w *World) { w.pointer = m }
}

// New builds an empty world. Call Setup before stepping. A nil logger
// disables logging.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pal, err := palette.New(cfg.Palette, cfg.Physics.Seed)
	if err != nil {
		return nil, err
	}

	w := &World{
		cfg:      *cfg,
		params:   cfg.Params(),
		log:      logger,
		detector: collision.NewDetector(cfg.Physics.Radius, cfg.Physics.MaxVelocity),
		pointer:  pointer.New(cfg.Mapping(), field.Extent{}),
		palette:  pal,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.kernel == nil {
		k, err := compute.GetBackend(cfg.Backend, w.params)
		if err != nil {
			return nil, err
		}
		w.kernel = k
	}
	return w, nil
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Config() config.Config        { return w.cfg }
func (w *World) Params() integrators.Params   { return w.params }
func (w *World) Kernel() compute.Kernel       { return w.kernel }
func (w *World) Extent() field.Extent         { return w.extent }
func (w *World) Bounds() field.Bounds         { return w.bounds }
func (w *World) Radius() float64              { return w.cfg.Physics.Radius }
func (w *World) Frame() int                   { return w.frame }
func (w *World) Pointer() field.Pointer       { return w.pointer.State() }
func (w *World) Particles() []*field.Particle { return w.particles }
func (w *World) Metrics() []Metric            { return w.metrics }

// Setup discards every particle and fills a new lattice for ext. The
// random source is reseeded, so the same extent always yields the same
// particles. On error the previous collection is kept.
func (w *World) Setup(ext field.Extent) error {
	phys := w.cfg.Physics
	rests, err := Lattice(ext, phys.Spacing, phys.Padding)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	rng := rand.New(rand.NewSource(phys.Seed))
	next := make([]*field.Particle, len(rests))
	for i, rest := range rests {
		friction := draw(rng, phys.Friction)
		restitution := draw(rng, phys.Restitution)
		c := w.palette.Color(rest, ext, rng)
		next[i] = field.NewParticle(field.ID(i), rest, friction, restitution, c)
	}

	w.particles = next
	w.extent = ext
	w.bounds = ext.Bounds(phys.Padding)
	w.frame = 0
	w.pointer.Resize(ext)
	for _, m := range w.metrics {
		m.Reset()
	}

	w.log.Debug("setup",
		zap.Float64("width", ext.Width),
		zap.Float64("height", ext.Height),
		zap.Int("particles", len(next)),
		zap.Int64("seed", phys.Seed),
	)
	return nil
}

func draw(rng *rand.Rand, r config.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Step advances every particle by one frame and resolves collisions. A
// particle whose kernel call fails keeps its previous state for the frame.
func (w *World) Step() Report {
	w.frame++
	ptr := w.pointer.State()
	rep := Report{Frame: w.frame}

	for _, p := range w.particles {
		body := p.Body()
		w.in = compute.Encode(w.in[:0], ptr, body, w.extent)
		out, err := w.kernel.Call(w.in)
		if err == nil {
			body, err = compute.Decode(out, body)
		}
		if err != nil {
			rep.Errors = append(rep.Errors, &field.StepError{ID: p.ID, Frame: w.frame, Wrapped: err})
			w.log.Warn("skipping particle update",
				zap.Uint32("particle", uint32(p.ID)),
				zap.Int("frame", w.frame),
				zap.String("kernel", w.kernel.Name()),
				zap.Error(err),
			)
			continue
		}
		p.Apply(body)
	}

	if w.cfg.Physics.Collisions {
		rep.Collisions = w.detector.Resolve(w.particles, w.bounds)
	}
	rep.Resetting = w.ResettingCount()

	f := &Frame{
		Index:     w.frame,
		Extent:    w.extent,
		Bounds:    w.bounds,
		Pointer:   ptr,
		Radius:    w.cfg.Physics.Radius,
		Particles: w.particles,
		Report:    rep,
	}
	for _, m := range w.metrics {
		m.Observe(f)
	}
	for _, o := range w.observers {
		o.OnStep(f)
	}
	return rep
}

func (w *World) ResettingCount() int {
	n := 0
	for _, p := range w.particles {
		if p.Resetting() {
			n++
		}
	}
	return n
}

// Draw paints every particle.
func (w *World) Draw(dst field.Painter) {
	r := w.cfg.Physics.Radius
	for _, p := range w.particles {
		p.Draw(dst, r)
	}
}

func (w *World) Close() {
	if w.kernel != nil {
		w.kernel.Cleanup()
	}
}
