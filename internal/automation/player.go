package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/world"
	"go.uber.org/zap"
)

// Player applies a scenario's events to a world as frames pass.
type Player struct {
	scenario *Scenario
	world    *world.World
	log      *zap.Logger
	next     int
	err      error
}

func NewPlayer(s *Scenario, w *world.World, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{scenario: s, world: w, log: logger}
}

// Apply fires every pending event scheduled at or before frame.
func (p *Player) Apply(frame int) error {
	events := p.scenario.Events
	for p.next < len(events) && events[p.next].Frame <= frame {
		e := events[p.next]
		p.next++
		if err := p.fire(e); err != nil {
			return fmt.Errorf("frame %d %s: %w", e.Frame, e.Action, err)
		}
	}
	return nil
}

// Done reports whether every event has fired.
func (p *Player) Done() bool { return p.next >= len(p.scenario.Events) }

func (p *Player) fire(e Event) error {
	w := p.world
	ext := w.Extent()
	x, y := e.X*ext.Width, e.Y*ext.Height
	p.log.Debug("scenario event",
		zap.String("action", string(e.Action)),
		zap.Int("frame", e.Frame),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)

	switch e.Action {
	case Press:
		w.PointerDown(x, y)
	case Move:
		w.PointerMove(x, y)
	case Release:
		w.PointerUp()
	case DoubleTap:
		w.DoubleTap()
	case Blur:
		w.Blur()
	case TouchStart:
		w.TouchStart(x, y)
	case TouchEnd:
		w.TouchEnd()
	case Resize:
		return w.Resize(field.Extent{Width: e.Width, Height: e.Height})
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidScenario, e.Action)
	}
	return nil
}

// Run sets the world up for the scenario canvas, when it names one, and
// drives it for frames steps (the scenario's own count when frames is
// zero), firing events along the way.
func Run(ctx context.Context, d *world.Driver, w *world.World, s *Scenario, frames int, logger *zap.Logger) (*world.Result, error) {
	if s.Width > 0 && s.Height > 0 {
		if err := w.Setup(field.Extent{Width: s.Width, Height: s.Height}); err != nil {
			return nil, err
		}
	}
	if frames <= 0 {
		frames = s.Frames
	}

	p := NewPlayer(s, w, logger)
	if err := p.Apply(0); err != nil {
		return nil, err
	}
	res, err := d.Run(ctx, frames, func(rep world.Report) bool {
		if p.err = p.Apply(rep.Frame); p.err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return res, err
	}
	return res, p.err
}
