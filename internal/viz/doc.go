// Package viz is the terminal front-end for a particle field.
//
// [Model] is a Bubble Tea program that steps a world on a timer and paints
// it on a Braille [Canvas]. Mouse presses, drags and releases map to the
// world's pointer gestures, and focus loss is a blur.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset every particle to its rest position
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
