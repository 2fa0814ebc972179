package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ACF calculates the autocorrelation function of x for lags 0 to maxLag.
// It returns nil when x is constant or maxLag is negative.
func ACF(x []float64, maxLag int) []float64 {
	n := len(x)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(x, nil)
	variance := 0.0
	for _, v := range x {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (x[i] - mean) * (x[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	Lags      int     `json:"lags" yaml:"lags"`
}

// LjungBox tests forecast errors for autocorrelation up to the given lag.
// The null hypothesis is that the errors are uncorrelated; a p-value below
// 0.05 means the forecast leaves predictable structure on the table.
// It returns nil when there are fewer than 10 samples or the errors are
// constant.
func LjungBox(residuals []float64, lags int) *LjungBoxResult {
	n := len(residuals)
	if n < 10 || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(residuals, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	return &LjungBoxResult{
		Statistic: q,
		PValue:    distuv.ChiSquared{K: float64(lags)}.Survival(q),
		Lags:      lags,
	}
}
