package compute

import (
	"fmt"
	"math"

	"github.com/san-kum/dotfield/internal/field"
)

const (
	InputLen  = 18
	OutputLen = 7
)

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Encode appends the kernel input for one particle to dst.
func Encode(dst []float64, ptr field.Pointer, b field.Body, ext field.Extent) []float64 {
	return append(dst,
		ptr.X, ptr.Y, flag(ptr.Pressed),
		b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Gravity.X, b.Gravity.Y,
		flag(b.Resetting), b.ResetFrom.X, b.ResetFrom.Y,
		b.Friction, b.Restitution, b.Rest.X, b.Rest.Y,
		ext.Width, ext.Height,
	)
}

// DecodeInput is the inverse of Encode.
func DecodeInput(in []float64) (field.Pointer, field.Body, field.Extent, error) {
	if len(in) != InputLen {
		return field.Pointer{}, field.Body{}, field.Extent{},
			fmt.Errorf("%w: got %d values, want %d", ErrMalformedInput, len(in), InputLen)
	}
	ptr := field.Pointer{X: in[0], Y: in[1], Pressed: in[2] > 0.5}
	b := field.Body{
		Pos:         field.Vec{X: in[3], Y: in[4]},
		Vel:         field.Vec{X: in[5], Y: in[6]},
		Gravity:     field.Vec{X: in[7], Y: in[8]},
		Resetting:   in[9] > 0.5,
		ResetFrom:   field.Vec{X: in[10], Y: in[11]},
		Friction:    in[12],
		Restitution: in[13],
		Rest:        field.Vec{X: in[14], Y: in[15]},
	}
	ext := field.Extent{Width: in[16], Height: in[17]}
	return ptr, b, ext, nil
}

// EncodeResult appends the kernel output for a body to dst.
func EncodeResult(dst []float64, b field.Body) []float64 {
	return append(dst,
		b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Gravity.X, b.Gravity.Y, flag(b.Resetting),
	)
}

// Decode applies a kernel result to prev. The result must have exactly
// OutputLen finite values.
func Decode(out []float64, prev field.Body) (field.Body, error) {
	if len(out) != OutputLen {
		return prev, fmt.Errorf("%w: got %d values, want %d", ErrMalformedResult, len(out), OutputLen)
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return prev, fmt.Errorf("%w: value %d: %w", ErrMalformedResult, i, field.ErrNonFinite)
		}
	}
	next := prev
	next.Pos = field.Vec{X: out[0], Y: out[1]}
	next.Vel = field.Vec{X: out[2], Y: out[3]}
	next.Gravity = field.Vec{X: out[4], Y: out[5]}
	next.Resetting = out[6] > 0.5
	return next, nil
}
