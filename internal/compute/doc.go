// Package compute implements the numeric boundary of the per-particle
// update: a kernel takes one flat vector of inputs and returns one flat
// vector of outputs.
//
// # Layout
//
// The input vector holds the pointer, the particle and the extent:
//
//	pointer  x y pressed
//	particle x y vx vy gx gy is_resetting reset_from_x reset_from_y
//	         friction restitution rest_x rest_y
//	extent   width height
//
// The output vector holds the updated kinematic state:
//
//	x y vx vy gx gy is_resetting
//
// Flags are encoded as 1 and 0. Use [Encode] and [Decode] instead of
// indexing the vectors by hand:
//
//	in := compute.Encode(nil, ptr, body, extent)
//	out, err := kernel.Call(in)
//	if err == nil {
//	    body, err = compute.Decode(out, body)
//	}
//
// A kernel is a pure function of its input. The CPU backend runs the
// integrators directly and is always available.
package compute
