package compute

import (
	"fmt"
	"sort"

	"github.com/san-kum/dotfield/internal/integrators"
)

// Kernel advances one particle by one step.
type Kernel interface {
	Name() string
	Available() bool
	Call(in []float64) ([]float64, error)
	Cleanup()
}

// Factory builds a kernel for a parameter set.
type Factory func(p integrators.Params) Kernel

var factories = map[string]Factory{
	"cpu": func(p integrators.Params) Kernel { return NewCPUBackend(p) },
}

// Register makes a kernel selectable by name.
func Register(name string, f Factory) {
	factories[name] = f
}

func Backends() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBackend returns the named kernel. An empty name selects the CPU
// backend. A backend that reports itself unavailable is an error.
func GetBackend(name string, p integrators.Params) (Kernel, error) {
	if name == "" {
		name = "cpu"
	}
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	k := f(p)
	if !k.Available() {
		k.Cleanup()
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, name)
	}
	return k, nil
}
