package world

import "github.com/san-kum/dotfield/internal/field"

// PointerDown handles a button press at client coordinates. A press
// cancels any running reset; a second press inside the double tap window
// starts a new one.
func (w *World) PointerDown(cx, cy float64) {
	double := w.pointer.Press(cx, cy)
	w.CancelResets()
	if double {
		w.ResetAll()
	}
}

// PointerUp handles a button release.
func (w *World) PointerUp() {
	w.pointer.Release()
	if w.cfg.Physics.ResetOnRelease {
		w.ResetAll()
	}
}

func (w *World) PointerMove(cx, cy float64) {
	w.pointer.Move(cx, cy)
}

func (w *World) TouchStart(cx, cy float64) {
	double := w.pointer.TouchStart(cx, cy)
	w.CancelResets()
	if double {
		w.ResetAll()
	}
}

// TouchEnd handles a lifted contact. Only the last contact counts as a
// release.
func (w *World) TouchEnd() {
	if w.pointer.TouchEnd() && w.cfg.Physics.ResetOnRelease {
		w.ResetAll()
	}
}

// DoubleTap starts a reset for front-ends that detect double clicks
// themselves.
func (w *World) DoubleTap() {
	w.ResetAll()
}

// Blur handles focus loss: the pointer is released without a reset.
func (w *World) Blur() {
	w.pointer.Blur()
}

// Resize rebuilds the field for a new canvas size.
func (w *World) Resize(ext field.Extent) error {
	return w.Setup(ext)
}

// ResetAll moves every free particle into Resetting.
func (w *World) ResetAll() {
	for _, p := range w.particles {
		p.BeginReset()
	}
}

// CancelResets frees every resetting particle where it stands.
func (w *World) CancelResets() {
	for _, p := range w.particles {
		p.CancelReset()
	}
}
