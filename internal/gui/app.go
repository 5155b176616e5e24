// Package gui is the raylib window front-end for a particle field.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/dotfield/internal/audio"
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/metrics"
	"github.com/san-kum/dotfield/internal/world"
	"go.uber.org/zap"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const maxTelemetry = 200

type Options struct {
	Width, Height int
	FPS           int
	Audio         bool
}

type App struct {
	World     *world.World
	Audio     *audio.Processor
	Running   bool
	ShowHUD   bool
	Telemetry []float64

	kinetic *metrics.KineticEnergy
	focused bool
	painter painter
	log     *zap.Logger
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "dotfield")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// NewApp attaches the HUD metric and, when requested, the audio pad. An
// audio device that fails to open is logged and skipped.
func NewApp(w *world.World, opts Options, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		World:     w,
		Running:   true,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		kinetic:   metrics.NewKineticEnergy(),
		focused:   true,
		log:       logger,
	}
	w.AddMetric(a.kinetic)

	if opts.Audio {
		proc := audio.NewProcessor(logger)
		if err := proc.Start(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		} else {
			a.Audio = proc
			w.AddObserver(proc)
		}
	}
	return a
}

// Run opens a window, fills it with particles and blocks until it is
// closed.
func Run(w *world.World, opts Options, logger *zap.Logger) error {
	initWindow(opts)
	defer rl.CloseWindow()

	ext := field.Extent{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
	if err := w.Setup(ext); err != nil {
		return fmt.Errorf("gui setup: %w", err)
	}
	app := NewApp(w, opts, logger)
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

// Update applies window and input events, then steps the world once.
func (a *App) Update() {
	w := a.World

	if rl.IsWindowResized() {
		ext := field.Extent{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
		if err := w.Resize(ext); err != nil {
			a.log.Warn("resize failed", zap.Float64("width", ext.Width), zap.Float64("height", ext.Height), zap.Error(err))
		}
	}

	focused := rl.IsWindowFocused()
	if a.focused && !focused {
		w.Blur()
	}
	a.focused = focused

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		w.ResetAll()
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}

	// raylib reports the primary touch as the left mouse button, so one
	// path covers both.
	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		w.PointerMove(mx, my)
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		w.PointerDown(mx, my)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		w.PointerUp()
	}

	if !a.Running {
		return
	}
	w.Step()
	a.Telemetry = append(a.Telemetry, a.kinetic.Last())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.World.Draw(a.painter)
	if ptr := a.World.Pointer(); ptr.Pressed {
		m := rl.GetMousePosition()
		rl.DrawCircleLines(int32(m.X), int32(m.Y), 12, rl.NewColor(255, 255, 255, 100))
	}
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}
