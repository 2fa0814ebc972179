package skill

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/goskill/stats"
	"github.com/sartorproj/goskill/timeseries"
)

// DefaultStdLevel is the interval half-width, in predicted spreads, used
// when checking coverage of a one-sigma interval.
const DefaultStdLevel = 1.0

// ScoreFunc scores the observations of one calendar month against the
// predicted mean and spread for the same samples.
type ScoreFunc func(y, mean, spread []float64) float64

// ExplainedVariance returns the squared Pearson correlation between the
// standardized observed and predicted values of each calendar month,
// rounded to three decimals. Months without observations, or whose values
// are constant, are NaN.
func ExplainedVariance(yTrue, yPred []float64, t []time.Time) (Monthly, error) {
	if err := checkAligned(t, yTrue, yPred); err != nil {
		return Monthly{}, err
	}
	return Stratify(t, func(idx []int) (float64, error) {
		r, _ := monthlyPearson(yTrue, yPred, idx)
		return math.RoundToEven(r*r*1000) / 1000, nil
	})
}

// Correlation returns the per-month Pearson correlation of the
// standardized observed and predicted values together with its two-sided
// p-value.
func Correlation(yTrue, yPred []float64, t []time.Time) (r, p Monthly, err error) {
	if err := checkAligned(t, yTrue, yPred); err != nil {
		return Monthly{}, Monthly{}, err
	}

	for i := range p {
		p[i] = math.NaN()
	}
	r, err = Stratify(t, func(idx []int) (float64, error) {
		rv, pv := monthlyPearson(yTrue, yPred, idx)
		p[t[idx[0]].Month()-1] = pv
		return rv, nil
	})
	if err != nil {
		return Monthly{}, Monthly{}, err
	}
	return r, p, nil
}

func monthlyPearson(yTrue, yPred []float64, idx []int) (r, p float64) {
	y := stats.Scale(timeseries.Select(yTrue, idx))
	pred := stats.Scale(timeseries.Select(yPred, idx))
	return stats.Pearson(y, pred)
}

// RMSEPerMonth returns the root mean squared error of each calendar month
// divided by the population standard deviation of that month's
// observations.
//
// A month whose observations are constant has no scale. If the forecast is
// exact there the entry is 0; otherwise the call fails with
// ErrDegenerateInput rather than reporting an infinite error.
func RMSEPerMonth(yTrue, yPred []float64, t []time.Time) (Monthly, error) {
	if err := checkAligned(t, yTrue, yPred); err != nil {
		return Monthly{}, err
	}
	return Stratify(t, func(idx []int) (float64, error) {
		y := timeseries.Select(yTrue, idx)
		pred := timeseries.Select(yPred, idx)

		rmse := math.Sqrt(stats.MSE(y, pred))
		sd := stats.PopStd(y)
		if sd == 0 {
			if rmse == 0 {
				return 0, nil
			}
			return 0, fmt.Errorf("%w: observations have zero standard deviation", ErrDegenerateInput)
		}
		return rmse / sd, nil
	})
}

// RMSESeasonalMean averages RMSEPerMonth over the twelve months. It is NaN
// if any month has no observations.
func RMSESeasonalMean(yTrue, yPred []float64, t []time.Time) (float64, error) {
	monthly, err := RMSEPerMonth(yTrue, yPred, t)
	if err != nil {
		return math.NaN(), err
	}
	return monthly.Mean(), nil
}

// RMSE returns the root mean squared error over the whole series.
func RMSE(yTrue, yPred []float64) (float64, error) {
	if err := checkSameLength(yTrue, yPred); err != nil {
		return math.NaN(), err
	}
	if len(yTrue) == 0 {
		return math.NaN(), fmt.Errorf("%w: empty series", ErrDegenerateInput)
	}
	return math.Sqrt(stats.MSE(yTrue, yPred)), nil
}

// NRMSE returns RMSE divided by the range spanned by the observed and
// predicted values together.
func NRMSE(yTrue, yPred []float64) (float64, error) {
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	lo := math.Min(floats.Min(yTrue), floats.Min(yPred))
	hi := math.Max(floats.Max(yTrue), floats.Max(yPred))
	if hi == lo {
		return math.NaN(), fmt.Errorf("%w: combined range is zero", ErrDegenerateInput)
	}
	return rmse / (hi - lo), nil
}

// SeasonalNLL applies score to the observations, predicted means and
// predicted spreads of each calendar month. Months without observations
// are NaN and score is not called for them.
func SeasonalNLL(yTrue, mean, spread []float64, t []time.Time, score ScoreFunc) (Monthly, error) {
	if score == nil {
		return Monthly{}, errors.New("skill: nil score function")
	}
	if err := checkAligned(t, yTrue, mean, spread); err != nil {
		return Monthly{}, err
	}
	return Stratify(t, func(idx []int) (float64, error) {
		return score(
			timeseries.Select(yTrue, idx),
			timeseries.Select(mean, idx),
			timeseries.Select(spread, idx),
		), nil
	})
}

// InsideFraction returns the fraction of observations strictly inside
// mean ± stdLevel·spread. An observation on either boundary is outside.
func InsideFraction(yTrue, mean, spread []float64, stdLevel float64) (float64, error) {
	if err := checkSameLength(yTrue, mean, spread); err != nil {
		return math.NaN(), err
	}
	if len(yTrue) == 0 {
		return math.NaN(), fmt.Errorf("%w: empty series", ErrDegenerateInput)
	}

	inside := 0
	for i, y := range yTrue {
		lo := mean[i] - spread[i]*stdLevel
		hi := mean[i] + spread[i]*stdLevel
		if y > lo && y < hi {
			inside++
		}
	}
	return float64(inside) / float64(len(yTrue)), nil
}

// SeasonalInsideFraction is InsideFraction computed per calendar month.
func SeasonalInsideFraction(yTrue, mean, spread []float64, t []time.Time, stdLevel float64) (Monthly, error) {
	if err := checkAligned(t, yTrue, mean, spread); err != nil {
		return Monthly{}, err
	}
	return Stratify(t, func(idx []int) (float64, error) {
		return InsideFraction(
			timeseries.Select(yTrue, idx),
			timeseries.Select(mean, idx),
			timeseries.Select(spread, idx),
			stdLevel,
		)
	})
}
