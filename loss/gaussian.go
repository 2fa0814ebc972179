package loss

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GaussianNLL is the negative log-likelihood of the targets under a normal
// distribution with predicted mean (column 0) and spread (column 1),
// without the constant 0.5·log(2π) term:
//
//	s = spread + Epsilon
//	L = 0.5·log(s²) + (y − mean)² / (2·s²)
//
// The zero value has no spread floor and returns NaN or +Inf for a zero
// spread. Use NewGaussianNLL, or set Epsilon explicitly.
type GaussianNLL struct {
	Epsilon float64
}

// NewGaussianNLL returns a GaussianNLL using DefaultSpreadFloor.
func NewGaussianNLL() GaussianNLL {
	return GaussianNLL{Epsilon: DefaultSpreadFloor}
}

func (g GaussianNLL) Loss(yTrue []float64, yPred mat.Matrix) (float64, error) {
	loss, _, err := evaluate(yTrue, yPred, 2, false, g.sample)
	return loss, err
}

func (g GaussianNLL) Gradient(yTrue []float64, yPred mat.Matrix) (float64, *mat.Dense, error) {
	return evaluate(yTrue, yPred, 2, true, g.sample)
}

func (g GaussianNLL) sample(y float64, params, grad []float64) float64 {
	return gaussianTerm(y, params[0], params[1]+g.Epsilon, grad)
}

func gaussianTerm(y, mean, s float64, grad []float64) float64 {
	d := y - mean
	s2 := s * s
	if grad != nil {
		grad[0] = -d / s2
		grad[1] = 1/s - d*d/(s2*s)
	}
	return 0.5*math.Log(s2) + d*d/(2*s2)
}
