package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scale standardizes x to zero mean and unit population variance. The input
// is not modified. A constant input has no defined scale and yields NaN
// values.
func Scale(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	mean, std := stat.Mean(x, nil), PopStd(x)
	if std == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i, v := range x {
		out[i] = (v - mean) / std
	}
	return out
}

// PopStd returns the population standard deviation of x (normalized by n,
// not n-1). It is NaN for an empty slice.
func PopStd(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.PopVariance(x, nil))
}

// MSE returns the mean squared difference between a and b. It is NaN for
// empty input and panics if the lengths differ.
func MSE(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("stats: slice length mismatch")
	}
	if len(a) == 0 {
		return math.NaN()
	}
	d := floats.Distance(a, b, 2)
	return d * d / float64(len(a))
}
