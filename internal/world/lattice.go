package world

import (
	"fmt"
	"math"

	"github.com/san-kum/dotfield/internal/field"
)

// Lattice returns rest positions on a square grid with the given spacing,
// covering extent*(1-2*padding) and centered in it. The grid always has at
// least one point per axis.
func Lattice(ext field.Extent, spacing, padding float64) ([]field.Vec, error) {
	if !ext.Valid() {
		return nil, fmt.Errorf("%w: %gx%g", field.ErrDegenerateExtent, ext.Width, ext.Height)
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) || !(padding >= 0 && padding < field.MaxPadding) {
		return nil, fmt.Errorf("%w: spacing %g padding %g", field.ErrInvalidLayout, spacing, padding)
	}

	xs := axis(ext.Width, spacing, padding)
	ys := axis(ext.Height, spacing, padding)

	out := make([]field.Vec, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			out = append(out, field.Vec{X: x, Y: y})
		}
	}
	return out, nil
}

func axis(size, spacing, padding float64) []float64 {
	lo := size * padding
	span := math.Max(size-2*lo, 0)
	n := int(math.Floor(span/spacing)) + 1
	start := lo + (span-float64(n-1)*spacing)/2

	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*spacing
	}
	return out
}
