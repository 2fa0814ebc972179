// Package goskill scores seasonal forecasts and provides probabilistic training losses.
//
// It evaluates a forecast against observations month by month and computes the
// negative log-likelihood of observations under Gaussian and skew-Gaussian
// predictive distributions, with analytic gradients for use as a training objective.
//
// # Features
//
//   - Per-calendar-month explained variance, Pearson correlation with p-value and normalized RMSE
//   - Whole-series RMSE and range-normalized RMSE
//   - Interval coverage (inside fraction) for spread-based confidence intervals
//   - Seasonal wrapper for any likelihood-style score function
//   - Gaussian and skew-Gaussian negative log-likelihood with stability floors
//   - JSON/YAML skill reports and monthly skill charts
//
// # Quick Start
//
// Score a forecast per month:
//
//	ev, err := skill.ExplainedVariance(observed, predicted, timestamps)
//	r, p, err := skill.Correlation(observed, predicted, timestamps)
//
// Evaluate a probabilistic loss and its gradient:
//
//	params := mat.NewDense(n, 2, meanAndSpread)
//	value, grad, err := loss.NewGaussianNLL().Gradient(observed, params)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Series and forecast frames, CSV loading
//   - stats: Standardization, Pearson correlation, residual diagnostics
//   - skill: Seasonal skill metrics
//   - loss: Probabilistic losses with gradients
//   - report: Full skill reports, rendering and plotting
//
// The skillreport command in cmd/skillreport runs a report over a forecast CSV file.
package goskill
