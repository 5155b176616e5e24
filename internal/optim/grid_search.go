// Package optim searches physics parameters for the best scoring field.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/world"
)

// setters maps tunable names to the physics field they write.
var setters = map[string]func(*config.PhysicsConfig, float64){
	"gravity":      func(p *config.PhysicsConfig, v float64) { p.Gravity = v },
	"multiplier":   func(p *config.PhysicsConfig, v float64) { p.Multiplier = v },
	"max_velocity": func(p *config.PhysicsConfig, v float64) { p.MaxVelocity = v },
	"radius":       func(p *config.PhysicsConfig, v float64) { p.Radius = v },
	"spacing":      func(p *config.PhysicsConfig, v float64) { p.Spacing = v },
	"padding":      func(p *config.PhysicsConfig, v float64) { p.Padding = v },
}

// Tunable lists the parameter names a search accepts.
func Tunable() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets one named physics parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	set(&cfg.Physics, v)
	return nil
}

// Score rates a configuration; lower is better.
type Score func(ctx context.Context, cfg *config.Config) (float64, error)

type Trial struct {
	Params map[string]float64
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search scores every combination on a copy of base. Trials that fail
// validation or scoring are kept with their error and never win. The
// returned trials are in grid order.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, score Score) (Trial, []Trial, error) {
	var trials []Trial
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, score, &trials); err != nil {
		return Trial{}, trials, err
	}

	best := Trial{Score: math.Inf(1)}
	for _, t := range trials {
		if t.Err == nil && t.Score < best.Score {
			best = t
		}
	}
	if best.Params == nil {
		return best, trials, fmt.Errorf("no trial succeeded")
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	score Score,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		*trials = append(*trials, g.run(ctx, current, base, score))
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, score, trials); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) run(ctx context.Context, params map[string]float64, base *config.Config, score Score) Trial {
	cfg := base.Clone()
	for name, v := range params {
		setters[name](&cfg.Physics, v)
	}
	t := Trial{Params: params, Score: math.Inf(1)}
	if t.Err = cfg.Validate(); t.Err != nil {
		return t
	}
	t.Score, t.Err = score(ctx, cfg)
	if t.Err != nil {
		t.Score = math.Inf(1)
	}
	return t
}

// SettleScore scores a configuration by the mean number of steps a
// displaced field needs to settle across the sweep seeds. A seed that
// does not settle scores +Inf.
func SettleScore(opts world.SweepOptions) Score {
	return func(ctx context.Context, cfg *config.Config) (float64, error) {
		results, err := world.Sweep(ctx, cfg, opts)
		if err != nil {
			return math.Inf(1), err
		}
		total := 0.0
		for _, r := range results {
			if !r.Converged {
				return math.Inf(1), nil
			}
			total += float64(r.Steps)
		}
		if len(results) == 0 {
			return math.Inf(1), nil
		}
		return total / float64(len(results)), nil
	}
}
