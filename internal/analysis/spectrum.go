package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// Spectrum holds one-sided power per frequency bin.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum returns the power of data sampled at rate. The mean is
// removed first so the DC bin does not dominate. Any length is accepted.
func PowerSpectrum(data []float64, rate float64) Spectrum {
	n := len(data)
	if n < 2 || rate <= 0 {
		return Spectrum{}
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	bins := n/2 + 1
	ps := Spectrum{Freqs: make([]float64, bins), Power: make([]float64, bins)}
	for k := 0; k < bins; k++ {
		a := cmplx.Abs(coeffs[k])
		ps.Freqs[k] = float64(k) * rate / float64(n)
		ps.Power[k] = a * a / float64(n)
	}
	return ps
}

// Dominant returns the frequency and power of the strongest non-DC bin.
func (s Spectrum) Dominant() (float64, float64) {
	best := -1
	for k := 1; k < len(s.Power); k++ {
		if best < 0 || s.Power[k] > s.Power[best] {
			best = k
		}
	}
	if best < 0 {
		return 0, 0
	}
	return s.Freqs[best], s.Power[best]
}
