package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Settling returns the first index from which every later value has
// magnitude below band, or -1 if the series never settles.
func Settling(data []float64, band float64) int {
	idx := -1
	for i := len(data) - 1; i >= 0; i-- {
		if math.Abs(data[i]) >= band {
			break
		}
		idx = i
	}
	return idx
}

type Summary struct {
	Mean, Std float64
	Min, Max  float64
	Samples   int
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(data, nil)
	if len(data) < 2 {
		std = 0
	}
	return Summary{
		Mean:    mean,
		Std:     std,
		Min:     floats.Min(data),
		Max:     floats.Max(data),
		Samples: len(data),
	}
}
