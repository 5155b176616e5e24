// Package palette assigns each particle a color from its rest position.
package palette

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/field"
)

type Mode string

const (
	// Region uses the accent color inside the emblem mask and the base
	// color elsewhere.
	Region Mode = "region"
	// Random draws from the teal-blue family with random depth.
	Random Mode = "random"
	// Noise shifts the base hue with 2D perlin noise over the lattice.
	Noise Mode = "noise"
)

type Palette struct {
	mode   Mode
	base   colorful.Color
	accent colorful.Color
	scale  float64
	noise  *perlin.Perlin
}

// New builds a palette. Noise is seeded from seed so that a run with the
// same seed repaints identically.
func New(cfg config.PaletteConfig, seed int64) (*Palette, error) {
	base, err := colorful.Hex(cfg.Base)
	if err != nil {
		return nil, fmt.Errorf("palette base color: %w", err)
	}
	accent, err := colorful.Hex(cfg.Accent)
	if err != nil {
		return nil, fmt.Errorf("palette accent color: %w", err)
	}

	p := &Palette{
		mode:   Mode(cfg.Mode),
		base:   base,
		accent: accent,
		scale:  cfg.NoiseScale,
	}
	switch p.mode {
	case Region, Random:
	case Noise:
		p.noise = perlin.NewPerlin(2, 2, 3, seed)
	default:
		return nil, fmt.Errorf("unknown palette mode: %s", cfg.Mode)
	}
	return p, nil
}

func (p *Palette) Mode() Mode { return p.mode }

// Color picks the color for a particle resting at rest. rng supplies the
// per-particle jitter.
func (p *Palette) Color(rest field.Vec, ext field.Extent, rng *rand.Rand) colorful.Color {
	switch p.mode {
	case Random:
		return randomTeal(rng)
	case Noise:
		n := p.noise.Noise2D(rest.X*p.scale, rest.Y*p.scale)
		h, c, l := p.base.Hcl()
		return colorful.Hcl(math.Mod(h+n*120+360, 360), c, l).Clamped()
	}

	c := p.base
	if OnEmblem(rest.X, rest.Y, ext.Width, ext.Height) {
		c = p.accent
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, rng.Float64()*0.15).Clamped()
}

// randomTeal reproduces the #3399bbaa family: blue in [184, 224), alpha
// in [55, 255) applied as darkening over a black background.
func randomTeal(rng *rand.Rand) colorful.Color {
	blue := (rng.Float64()*40 + 184) / 255
	alpha := (rng.Float64()*200 + 55) / 255
	c := colorful.Color{R: 0x33 / 255.0, G: 0x99 / 255.0, B: blue}
	return colorful.Color{R: c.R * alpha, G: c.G * alpha, B: c.B * alpha}
}

// OnEmblem reports whether (x, y) falls on the emblem drawn in the largest
// centered square of a w by h canvas: a central chevron and two side bars.
func OnEmblem(x, y, w, h float64) bool {
	side := math.Min(w, h)
	ox, oy := (w-side)/2, (h-side)/2
	if x < ox || x > w-ox || y < oy || y > h-oy {
		return false
	}

	cx, cy := w/2, h/2
	dx := math.Abs(x - cx)
	top := cy / 1.5
	bottom := cy * 1.25

	outsideUpper := dx/-(y-top) > 1 || y > top
	insideLower := dx/-(y-bottom) < 1 && y < bottom
	if outsideUpper && insideLower {
		return true
	}

	return dx >= side/100*30
}
