// Package skill scores forecasts of a monthly series separately for each
// calendar month.
//
// Many geophysical series have strongly month-dependent statistics, so a
// forecast that looks skilful on the pooled record can still be poor in
// particular seasons. Every per-month function here partitions the samples
// by calendar month with Stratify and returns a Monthly vector, January
// first. A month without observations is NaN rather than being dropped.
//
// # Point Forecast Skill
//
//	ev, err := skill.ExplainedVariance(observed, predicted, timestamps)
//	r, p, err := skill.Correlation(observed, predicted, timestamps)
//	nrmse, err := skill.RMSEPerMonth(observed, predicted, timestamps)
//	fmt.Printf("March r²=%.3f\n", ev.Month(time.March))
//
// Whole-series errors:
//
//	rmse, err := skill.RMSE(observed, predicted)
//	nrmse, err := skill.NRMSE(observed, predicted)
//
// # Probabilistic Forecast Skill
//
// Coverage of the mean ± k·spread interval:
//
//	frac, err := skill.InsideFraction(observed, mean, spread, skill.DefaultStdLevel)
//	// ≈ skill.ExpectedGaussianCoverage(1) (0.683) for a calibrated forecast
//
// Any per-sample score can be stratified by month:
//
//	nll, err := skill.SeasonalNLL(observed, mean, spread, timestamps, skill.GaussianScore)
//
// # Errors
//
// Misaligned inputs fail with ErrShapeMismatch before anything is
// computed. Undefined scores that would otherwise be reported as infinite
// fail with ErrDegenerateInput. Correlation based scores follow the
// correlation routine and report NaN for constant months.
package skill
