package loss

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Stability floors. Both are tuned for standardized anomalies of order one;
// data on a very different scale may need different values, set through
// the Epsilon and Delta fields.
const (
	// DefaultSpreadFloor is added to the predicted spread before it is
	// squared, divided by or logged.
	DefaultSpreadFloor = 1e-6
	// DefaultDensityFloor is added inside the skew term's logarithm.
	DefaultDensityFloor = 1e-8
)

// ErrShapeMismatch is returned when the targets and the parameter matrix
// do not line up.
var ErrShapeMismatch = errors.New("loss: shape mismatch")

// Func is a batch negative log-likelihood over predicted distribution
// parameters. yPred has one row per target and one column per parameter.
type Func interface {
	// Loss returns the mean per-sample loss.
	Loss(yTrue []float64, yPred mat.Matrix) (float64, error)
	// Gradient returns the mean per-sample loss together with its
	// derivative with respect to every entry of yPred.
	Gradient(yTrue []float64, yPred mat.Matrix) (float64, *mat.Dense, error)
}

var (
	_ Func = GaussianNLL{}
	_ Func = SkewGaussianNLL{}
)

// sampleFunc returns the loss of one sample and, when grad is non-nil,
// writes the partial derivatives with respect to the row's parameters.
type sampleFunc func(y float64, params, grad []float64) float64

func evaluate(yTrue []float64, yPred mat.Matrix, need int, withGrad bool, f sampleFunc) (float64, *mat.Dense, error) {
	r, c := yPred.Dims()
	if r != len(yTrue) {
		return math.NaN(), nil, fmt.Errorf("%w: %d targets, %d prediction rows", ErrShapeMismatch, len(yTrue), r)
	}
	if c < need {
		return math.NaN(), nil, fmt.Errorf("%w: need %d parameter columns, got %d", ErrShapeMismatch, need, c)
	}
	if r == 0 {
		return math.NaN(), nil, fmt.Errorf("%w: empty batch", ErrShapeMismatch)
	}

	var grad *mat.Dense
	if withGrad {
		grad = mat.NewDense(r, c, nil)
	}

	params := make([]float64, need)
	g := make([]float64, need)
	n := float64(r)
	total := 0.0
	for i, y := range yTrue {
		for j := range params {
			params[j] = yPred.At(i, j)
		}
		if !withGrad {
			total += f(y, params, nil)
			continue
		}
		total += f(y, params, g)
		for j, v := range g {
			grad.Set(i, j, v/n)
		}
	}
	return total / n, grad, nil
}
