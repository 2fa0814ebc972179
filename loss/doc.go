// Package loss provides negative log-likelihood training objectives for
// models that predict a distribution rather than a point.
//
// Predictions are passed as a gonum matrix with one row per sample:
// (mean, spread) for GaussianNLL and (mean, spread, skew) for
// SkewGaussianNLL. Extra columns are ignored. Both losses average over the
// batch and expose a closed-form gradient with respect to every predicted
// parameter, so they can drive any gradient-based optimizer:
//
//	nll := loss.NewGaussianNLL()
//	value, grad, err := nll.Gradient(targets, params)
//	params.Sub(params, scaled(grad, learningRate))
//
// The predicted spread is offset by a small floor (DefaultSpreadFloor) and
// the skew term's logarithm by DefaultDensityFloor, so a collapsing spread
// produces a large but finite loss instead of Inf or NaN.
package loss
