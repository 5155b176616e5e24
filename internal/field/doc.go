// Package field provides the core types of the particle field.
//
// The package defines the values every other package agrees on:
//
//   - [Particle]: one body of the lattice with its color and reset state
//   - [Body]: the numeric state the integrators read and write
//   - [Pointer]: the normalized pointer input for one step
//   - [Extent]: canvas size in pixels and the padded bounds derived from it
//   - [Painter]: drawing target used by front-ends
//
// # Example
//
//	p := field.NewParticle(1, field.Vec{X: 120, Y: 90}, 0.4, 0.4, color)
//	p.BeginReset()
//	p.Draw(canvas, radius)
//
// # Thread Safety
//
// Particles are NOT thread-safe. A particle is owned by exactly one world
// and touched only from that world's step and event handlers.
package field
