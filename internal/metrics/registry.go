// Package metrics holds per-frame observers of a world.
package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/dotfield/internal/world"
)

var registry = map[string]func() world.Metric{
	"kinetic":      func() world.Metric { return NewKineticEnergy() },
	"displacement": func() world.Metric { return NewDisplacement() },
	"containment":  func() world.Metric { return NewContainment() },
	"resetting":    func() world.Metric { return NewResetting() },
	"collisions":   func() world.Metric { return NewCollisions() },
	"skipped":      func() world.Metric { return NewSkipped() },
}

// Standard returns a fresh instance of every metric in a stable order.
func Standard() []world.Metric {
	out := make([]world.Metric, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name]())
	}
	return out
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a fresh metric by name.
func New(name string) (world.Metric, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return f(), nil
}
