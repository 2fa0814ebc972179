package skill

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianScore is a ScoreFunc returning the mean negative log-density of y
// under independent normal predictions. Unlike the training loss it keeps
// the normalizing constant, so values are comparable with other proper
// scores. A zero spread gives +Inf or NaN.
func GaussianScore(y, mean, spread []float64) float64 {
	if len(y) == 0 {
		return math.NaN()
	}
	nll := 0.0
	for i := range y {
		nll -= distuv.Normal{Mu: mean[i], Sigma: spread[i]}.LogProb(y[i])
	}
	return nll / float64(len(y))
}

// ExpectedGaussianCoverage is the fraction of observations a calibrated
// Gaussian forecast places strictly inside mean ± stdLevel·spread.
func ExpectedGaussianCoverage(stdLevel float64) float64 {
	return math.Erf(math.Abs(stdLevel) / math.Sqrt2)
}
