// Package stats provides the statistical building blocks used by the skill
// scores: standardization, Pearson correlation with significance, mean
// squared error and residual autocorrelation diagnostics.
//
// All functions operate on plain float64 slices and never modify their
// inputs.
//
// # Standardization
//
//	z := stats.Scale(x) // zero mean, unit population variance
//	sd := stats.PopStd(x)
//
// # Correlation
//
// Pearson correlation and its two-sided p-value:
//
//	r, p := stats.Pearson(observed, predicted)
//	if p < 0.05 {
//	    // correlation is significant
//	}
//
// A constant input or fewer than two samples yields NaN for both values.
//
// # Error
//
//	mse := stats.MSE(observed, predicted)
//
// # Residual Diagnostics
//
// Test forecast errors for autocorrelation:
//
//	lb := stats.LjungBox(errors, 12)
//	if lb != nil && lb.PValue > 0.05 {
//	    // errors are white noise (good)
//	}
package stats
