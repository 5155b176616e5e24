// Package pointer turns raw pointer and touch events into the bounded
// force input read by the field each step.
package pointer

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/dotfield/internal/field"
)

// DoubleTapWindow is the longest gap between two presses that still counts
// as a double tap.
const DoubleTapWindow = 300 * time.Millisecond

// Mapping converts a client coordinate into [-1, 1] around the viewport center.
type Mapping string

const (
	Linear Mapping = "linear"
	Cubic  Mapping = "cubic"
)

func ParseMapping(s string) (Mapping, error) {
	switch Mapping(s) {
	case Linear, Cubic:
		return Mapping(s), nil
	case "":
		return Linear, nil
	}
	return "", fmt.Errorf("unknown pointer mapping: %s", s)
}

// Normalize maps c within a viewport side of length size. Cubic keeps the
// sign and flattens the response near the center.
func (m Mapping) Normalize(c, size float64) float64 {
	if size <= 0 || math.IsNaN(c) {
		return 0
	}
	u := (c - size/2) / size * 2
	u = math.Max(-1, math.Min(1, u))
	if m == Cubic {
		return u * u * u
	}
	return u
}

// Model holds the latest pointer state. Only the last event is retained.
type Model struct {
	mapping  Mapping
	viewport field.Extent
	state    field.Pointer
	touches  int

	lastPress time.Time
	now       func() time.Time
}

func New(mapping Mapping, viewport field.Extent) *Model {
	return &Model{mapping: mapping, viewport: viewport, now: time.Now}
}

// WithClock replaces the time source used for double tap detection.
func (m *Model) WithClock(now func() time.Time) *Model {
	m.now = now
	return m
}

func (m *Model) Mapping() Mapping             { return m.mapping }
func (m *Model) Viewport() field.Extent       { return m.viewport }
func (m *Model) Resize(viewport field.Extent) { m.viewport = viewport }
func (m *Model) State() field.Pointer         { return m.state }
func (m *Model) Touches() int                 { return m.touches }

// Move records a pointer or touch move.
func (m *Model) Move(cx, cy float64) {
	m.state.X = m.mapping.Normalize(cx, m.viewport.Width)
	m.state.Y = m.mapping.Normalize(cy, m.viewport.Height)
}

// Press records a button press. It reports whether the press completes a
// double tap.
func (m *Model) Press(cx, cy float64) bool {
	m.Move(cx, cy)
	m.state.Pressed = true

	now := m.now()
	double := !m.lastPress.IsZero() && now.Sub(m.lastPress) <= DoubleTapWindow
	if double {
		m.lastPress = time.Time{}
	} else {
		m.lastPress = now
	}
	return double
}

// Release records a button release. The pointer returns to the center
// and is no longer pressed. Any tracked touches are dropped.
func (m *Model) Release() {
	m.touches = 0
	m.clear()
}

// TouchStart records a new touch contact.
func (m *Model) TouchStart(cx, cy float64) bool {
	m.touches++
	return m.Press(cx, cy)
}

// TouchEnd records a lifted contact and reports whether it was the last one.
// The pointer only releases once no contacts remain.
func (m *Model) TouchEnd() bool {
	if m.touches > 0 {
		m.touches--
	}
	if m.touches > 0 {
		return false
	}
	m.clear()
	return true
}

// Blur resets the pointer when the window loses focus.
func (m *Model) Blur() {
	m.touches = 0
	m.clear()
}

func (m *Model) clear() {
	m.state = field.Pointer{}
}
