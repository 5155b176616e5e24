package world

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Driver steps a world at a fixed frame rate.
type Driver struct {
	world   *World
	limiter *rate.Limiter
	fps     int
}

// NewDriver paces steps at fps frames per second. A non-positive fps runs
// unpaced.
func NewDriver(w *World, fps int) *Driver {
	limit := rate.Inf
	if fps > 0 {
		limit = rate.Limit(fps)
	}
	return &Driver{world: w, limiter: rate.NewLimiter(limit, 1), fps: fps}
}

// Result collects per-frame metric samples of a run.
type Result struct {
	Frames   int
	Columns  []string
	Times    []float64
	Samples  [][]float64
	Metrics  map[string]float64
	Errors   int
	Duration time.Duration
}

// Series returns the samples of one column, or nil.
func (r *Result) Series(name string) []float64 {
	for i, c := range r.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(r.Samples))
		for j, row := range r.Samples {
			out[j] = row[i]
		}
		return out
	}
	return nil
}

// Run steps the world until frames steps have run, ctx is done, or each
// returns false. A non-positive frames runs until cancellation. each may
// be nil; it runs after every step on the calling goroutine and is where
// scripted input is applied.
func (d *Driver) Run(ctx context.Context, frames int, each func(Report) bool) (*Result, error) {
	w := d.world
	res := &Result{Metrics: make(map[string]float64)}
	for _, m := range w.metrics {
		res.Columns = append(res.Columns, m.Name())
	}

	dt := 0.0
	if d.fps > 0 {
		dt = 1 / float64(d.fps)
	}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		for _, m := range w.metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}()

	for frames <= 0 || res.Frames < frames {
		if err := d.limiter.Wait(ctx); err != nil {
			return res, err
		}

		rep := w.Step()
		res.Frames++
		res.Errors += len(rep.Errors)

		row := make([]float64, len(w.metrics))
		for i, m := range w.metrics {
			row[i] = m.Last()
		}
		res.Samples = append(res.Samples, row)
		if dt > 0 {
			res.Times = append(res.Times, float64(res.Frames)*dt)
		} else {
			res.Times = append(res.Times, float64(res.Frames))
		}

		if len(rep.Errors) > 0 && len(rep.Errors) == len(w.particles) && len(w.particles) > 0 {
			w.log.Error("every particle update failed", zap.Int("frame", rep.Frame))
		}
		if each != nil && !each(rep) {
			break
		}
	}
	return res, nil
}

// Rate reports the pacing in frames per second, or +Inf when unpaced.
func (d *Driver) Rate() float64 {
	if d.fps <= 0 {
		return math.Inf(1)
	}
	return float64(d.fps)
}
