package gui

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestToColor(t *testing.T) {
	c := toColor(colorful.Color{R: 1, G: 0.2, B: 1.5})
	if c.R != 255 || c.G != 51 || c.B != 255 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
}

func TestTelemetryPoints(t *testing.T) {
	if telemetryPoints([]float64{1}, 0, 0, 10, 10) != nil {
		t.Error("a single sample has no line")
	}

	pts := telemetryPoints([]float64{0, 5, 10}, 10, 20, 100, 50)
	if len(pts) != 3 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[0].X != 10 || pts[0].Y != 70 {
		t.Errorf("first point %+v", pts[0])
	}
	if pts[2].X != 110 || pts[2].Y != 20 {
		t.Errorf("last point %+v", pts[2])
	}
}
