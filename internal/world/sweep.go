package world

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/field"
	"golang.org/x/sync/errgroup"
)

// SweepOptions describe one convergence run per seed: the pointer is held
// at Press (viewport fractions) for Hold frames, then released, and the
// run counts the frames until no particle is resetting.
type SweepOptions struct {
	Extent   field.Extent
	Seeds    []int64
	Hold     int
	MaxSteps int
	PressX   float64
	PressY   float64
	Workers  int
}

type SweepResult struct {
	Seed      int64
	Particles int
	Steps     int
	Converged bool
	Skipped   int
}

// Sweep runs independent worlds in parallel, one per seed. Results are in
// seed order.
func Sweep(ctx context.Context, cfg *config.Config, opts SweepOptions) ([]SweepResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SweepResult, len(opts.Seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range opts.Seeds {
		g.Go(func() error {
			c := *cfg
			c.Physics.Seed = seed
			c.Physics.ResetOnRelease = true

			r, err := converge(ctx, &c, opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func converge(ctx context.Context, cfg *config.Config, opts SweepOptions) (SweepResult, error) {
	w, err := New(cfg, nil)
	if err != nil {
		return SweepResult{}, err
	}
	defer w.Close()

	if err := w.Setup(opts.Extent); err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{Seed: cfg.Physics.Seed, Particles: len(w.Particles())}
	w.PointerDown(opts.PressX*opts.Extent.Width, opts.PressY*opts.Extent.Height)
	for i := 0; i < opts.Hold; i++ {
		res.Skipped += len(w.Step().Errors)
	}
	w.PointerUp()

	for res.Steps < opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rep := w.Step()
		res.Steps++
		res.Skipped += len(rep.Errors)
		if rep.Resetting == 0 {
			res.Converged = true
			break
		}
	}
	return res, nil
}
