// Package automation replays scripted gestures against a world.
package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Action names a scripted gesture.
type Action string

const (
	Press      Action = "press"
	Move       Action = "move"
	Release    Action = "release"
	DoubleTap  Action = "double_tap"
	Blur       Action = "blur"
	TouchStart Action = "touch_start"
	TouchEnd   Action = "touch_end"
	Resize     Action = "resize"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a gesture script. Event coordinates are fractions of the
// viewport so one script fits any canvas.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Frames      int     `yaml:"frames"`
	Events      []Event `yaml:"events"`
}

// Event fires before the step with index Frame+1 runs; frame 0 events
// apply before the first step.
type Event struct {
	Frame  int     `yaml:"frame"`
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a scenario. Events are ordered by frame,
// keeping file order within a frame.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Frame < s.Events[j].Frame })
	return &s, nil
}

func (s *Scenario) Validate() error {
	if s.Width < 0 || s.Height < 0 || s.Frames < 0 {
		return fmt.Errorf("%w: negative size or frame count", ErrInvalidScenario)
	}
	for i, e := range s.Events {
		if e.Frame < 0 {
			return fmt.Errorf("%w: event %d: negative frame", ErrInvalidScenario, i)
		}
		switch e.Action {
		case Press, Move, TouchStart:
			if e.X < 0 || e.X > 1 || e.Y < 0 || e.Y > 1 {
				return fmt.Errorf("%w: event %d: coordinates outside [0,1]", ErrInvalidScenario, i)
			}
		case Resize:
			if e.Width <= 0 || e.Height <= 0 {
				return fmt.Errorf("%w: event %d: resize needs a positive size", ErrInvalidScenario, i)
			}
		case Release, DoubleTap, Blur, TouchEnd:
		default:
			return fmt.Errorf("%w: event %d: unknown action %q", ErrInvalidScenario, i, e.Action)
		}
	}
	return nil
}

// Builtin returns the bundled scenarios by name.
func Builtin() map[string]*Scenario {
	return map[string]*Scenario{
		"drag-release": {
			Name:        "drag-release",
			Description: "press near a corner, drag across, release and let the field settle",
			Frames:      600,
			Events: []Event{
				{Frame: 0, Action: Press, X: 0.1, Y: 0.1},
				{Frame: 30, Action: Move, X: 0.5, Y: 0.5},
				{Frame: 60, Action: Move, X: 0.9, Y: 0.8},
				{Frame: 120, Action: Release},
			},
		},
		"double-tap": {
			Name:        "double-tap",
			Description: "hold to displace, then double tap to snap back",
			Frames:      600,
			Events: []Event{
				{Frame: 0, Action: Press, X: 0.9, Y: 0.9},
				{Frame: 90, Action: Blur},
				{Frame: 100, Action: DoubleTap},
			},
		},
		"multi-touch": {
			Name:        "multi-touch",
			Description: "two contacts; only lifting the last one releases",
			Frames:      600,
			Events: []Event{
				{Frame: 0, Action: TouchStart, X: 0.2, Y: 0.8},
				{Frame: 40, Action: TouchStart, X: 0.8, Y: 0.2},
				{Frame: 80, Action: TouchEnd},
				{Frame: 120, Action: TouchEnd},
			},
		},
		"blur": {
			Name:        "blur",
			Description: "focus loss mid drag leaves the field displaced",
			Frames:      300,
			Events: []Event{
				{Frame: 0, Action: Press, X: 0.0, Y: 1.0},
				{Frame: 60, Action: Blur},
			},
		},
	}
}

// BuiltinNames lists the bundled scenarios in sorted order.
func BuiltinNames() []string {
	m := Builtin()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
