package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson returns the Pearson correlation coefficient of x and y together
// with the two-sided p-value for the null hypothesis of zero correlation.
// The p-value uses the Student's t distribution with n-2 degrees of freedom.
//
// Fewer than two samples, or a constant input, leave the correlation
// undefined and both results are NaN. x and y must have the same length.
func Pearson(x, y []float64) (r, p float64) {
	n := len(x)
	if n != len(y) {
		panic("stats: slice length mismatch")
	}
	if n < 2 {
		return math.NaN(), math.NaN()
	}
	if stat.PopVariance(x, nil) == 0 || stat.PopVariance(y, nil) == 0 {
		return math.NaN(), math.NaN()
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return math.NaN(), math.NaN()
	}
	// Rounding can push |r| marginally past 1.
	r = math.Max(-1, math.Min(1, r))

	if n == 2 {
		return r, 1
	}
	if math.Abs(r) == 1 {
		return r, 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.Survival(math.Abs(t))
	return r, math.Min(p, 1)
}
