package compute

import "github.com/san-kum/dotfield/internal/integrators"

type CPUBackend struct {
	params integrators.Params
	out    []float64
}

func NewCPUBackend(p integrators.Params) *CPUBackend {
	return &CPUBackend{params: p}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// Call runs one step. The returned slice is reused by the next call.
func (c *CPUBackend) Call(in []float64) ([]float64, error) {
	ptr, b, ext, err := DecodeInput(in)
	if err != nil {
		return nil, err
	}
	next := integrators.Advance(b, ptr, ext, c.params)
	c.out = EncodeResult(c.out[:0], next)
	return c.out, nil
}
