package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dotfield/internal/field"
)

// painter draws particles straight to the current raylib frame.
type painter struct{}

func (painter) Circle(center field.Vec, radius float64, c colorful.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), toColor(c))
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

// telemetryPoints scales values into a w by h box at (x, y), newest
// sample on the right.
func telemetryPoints(values []float64, x, y, w, h float32) []rl.Vector2 {
	if len(values) < 2 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, v := range values {
		px := x + float32(i)/float32(len(values)-1)*w
		py := y + h - float32((v-lo)/(hi-lo))*h
		points[i] = rl.NewVector2(px, py)
	}
	return points
}

func (a *App) DrawHUD() {
	w := a.World
	screenH := int32(rl.GetScreenHeight())

	rl.DrawText("dotfield", 30, 30, 24, ColSelect)
	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, 30, 60, 16, col)
	rl.DrawText(fmt.Sprintf("%d particles  %d resetting  %s", len(w.Particles()), w.ResettingCount(), w.Kernel().Name()), 30, 84, 14, ColText)

	if pts := telemetryPoints(a.Telemetry, 30, float32(screenH-130), 300, 50); pts != nil {
		rl.DrawLineStrip(pts, ColAccent)
		rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), 340, screenH-90, 14, ColText)
	}

	if a.Audio != nil {
		bass, mid, high := a.Audio.Levels()
		bars := min(int((bass+mid+high)/3*20), 20)
		rl.DrawText(fmt.Sprintf("PAD [%-20s]", strings.Repeat("|", bars)), 30, screenH-60, 14, ColAccent)
	}

	rl.DrawText(fmt.Sprintf("%d FPS   [SPACE] PAUSE  [R] RESET  [H] HUD  [Q] QUIT", rl.GetFPS()), 30, screenH-34, 14, ColTextDim)
}
