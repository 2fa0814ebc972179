package loss

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SkewGaussianNLL is the negative log-likelihood of the targets under a
// skew-normal distribution with predicted location (column 0), spread
// (column 1) and shape (column 2), up to additive constants. It extends
// GaussianNLL by
//
//	−log(1 + erf(skew · (y − mean) / (s·√2)) + Delta)
//
// and equals GaussianNLL minus log(1+Delta) when skew is zero.
//
// The zero value disables both floors, so a zero spread or an extreme skew
// yields NaN or +Inf. Use NewSkewGaussianNLL, or set Epsilon and Delta.
type SkewGaussianNLL struct {
	Epsilon float64
	Delta   float64
}

// NewSkewGaussianNLL returns a SkewGaussianNLL using DefaultSpreadFloor
// and DefaultDensityFloor.
func NewSkewGaussianNLL() SkewGaussianNLL {
	return SkewGaussianNLL{Epsilon: DefaultSpreadFloor, Delta: DefaultDensityFloor}
}

func (k SkewGaussianNLL) Loss(yTrue []float64, yPred mat.Matrix) (float64, error) {
	loss, _, err := evaluate(yTrue, yPred, 3, false, k.sample)
	return loss, err
}

func (k SkewGaussianNLL) Gradient(yTrue []float64, yPred mat.Matrix) (float64, *mat.Dense, error) {
	return evaluate(yTrue, yPred, 3, true, k.sample)
}

func (k SkewGaussianNLL) sample(y float64, params, grad []float64) float64 {
	mean, s, skew := params[0], params[1]+k.Epsilon, params[2]
	loss := gaussianTerm(y, mean, s, grad)

	d := y - mean
	z := d / s
	a := skew * z / math.Sqrt2
	e := 1 + math.Erf(a) + k.Delta
	loss -= math.Log(e)

	if grad != nil {
		// d/da of −log(e)
		da := -2 / math.SqrtPi * math.Exp(-a*a) / e
		grad[0] += da * (-skew / (math.Sqrt2 * s))
		grad[1] += da * (-skew * d / (math.Sqrt2 * s * s))
		grad[2] = da * z / math.Sqrt2
	}
	return loss
}
