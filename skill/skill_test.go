package skill

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goskill/timeseries"
)

var start = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// monthlyCase builds ten years of a seasonal signal and a forecast whose
// error grows with the calendar month.
func monthlyCase() (yTrue, yPred []float64, t []time.Time) {
	n := 120
	yTrue = make([]float64, n)
	yPred = make([]float64, n)
	for i := range yTrue {
		month := i % 12
		year := i / 12
		signal := math.Sin(2*math.Pi*float64(month)/12) + 0.3*math.Cos(float64(year)*1.7+float64(month))
		noise := math.Sin(float64(i)*12.9898) * 0.05 * float64(month+1)
		yTrue[i] = signal
		yPred[i] = signal + noise
	}
	return yTrue, yPred, timeseries.NewMonthly(start, yTrue).Timestamps
}

func TestStratify(t *testing.T) {
	_, _, ts := monthlyCase()

	got, err := Stratify(ts, func(idx []int) (float64, error) {
		return float64(ts[idx[0]].Month()), nil
	})
	require.NoError(t, err)

	for i, v := range got {
		assert.Equal(t, float64(i+1), v, "month %d stored out of order", i+1)
	}
}

func TestStratifyEmptyMonths(t *testing.T) {
	ts := []time.Time{
		time.Date(2000, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.October, 1, 0, 0, 0, 0, time.UTC),
	}

	calls := 0
	got, err := Stratify(ts, func(idx []int) (float64, error) {
		calls++
		return float64(len(idx)), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2.0, got.Month(time.February))
	assert.Equal(t, 1.0, got.Month(time.October))
	assert.True(t, math.IsNaN(got.Month(time.January)))
	assert.True(t, math.IsNaN(got.Month(time.December)))
}

func TestStratifyAllOrNothing(t *testing.T) {
	_, _, ts := monthlyCase()

	got, err := Stratify(ts, func(idx []int) (float64, error) {
		if ts[idx[0]].Month() == time.June {
			return 0, ErrDegenerateInput
		}
		return 1, nil
	})

	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.ErrorContains(t, err, "month 6")
	assert.Equal(t, Monthly{}, got)
}

func TestExplainedVariance(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()

	ev, err := ExplainedVariance(yTrue, yPred, ts)
	require.NoError(t, err)

	for i, v := range ev {
		assert.GreaterOrEqual(t, v, 0.0, "month %d", i+1)
		assert.LessOrEqual(t, v, 1.0, "month %d", i+1)
		assert.Equal(t, v, math.Round(v*1000)/1000, "month %d is not rounded to 3 decimals", i+1)
	}

	// The forecast error grows through the year.
	assert.Greater(t, ev.Month(time.January), ev.Month(time.December))
}

func TestExplainedVarianceMatchesCorrelation(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()

	ev, err := ExplainedVariance(yTrue, yPred, ts)
	require.NoError(t, err)
	r, p, err := Correlation(yTrue, yPred, ts)
	require.NoError(t, err)

	for i := range ev {
		assert.InDelta(t, math.Round(r[i]*r[i]*1000)/1000, ev[i], 1e-3+1e-12, "month %d", i+1)
		assert.GreaterOrEqual(t, p[i], 0.0)
		assert.LessOrEqual(t, p[i], 1.0)
	}
}

func TestCorrelationSign(t *testing.T) {
	yTrue := make([]float64, 36)
	yPred := make([]float64, 36)
	for i := range yTrue {
		yTrue[i] = float64((i*7)%11) + float64(i%12)
		yPred[i] = yTrue[i]
		if i%12 == 2 {
			yPred[i] = -yTrue[i] // March is anti-correlated
		}
	}
	ts := timeseries.NewMonthly(start, yTrue).Timestamps

	r, _, err := Correlation(yTrue, yPred, ts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.Month(time.January), 1e-12)
	assert.InDelta(t, -1.0, r.Month(time.March), 1e-12)

	ev, err := ExplainedVariance(yTrue, yPred, ts)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ev.Month(time.March))
}

func TestCorrelationEmptyMonths(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4, 5, 6}
	yPred := []float64{1.1, 2.3, 2.9, 4.2, 5.1, 5.8}
	ts := make([]time.Time, len(yTrue))
	for i := range ts {
		// Only January and July are populated.
		m := time.January
		if i%2 == 1 {
			m = time.July
		}
		ts[i] = time.Date(1990+i, m, 1, 0, 0, 0, 0, time.UTC)
	}

	r, p, err := Correlation(yTrue, yPred, ts)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(r.Month(time.January)))
	assert.False(t, math.IsNaN(p.Month(time.July)))
	assert.True(t, math.IsNaN(r.Month(time.April)))
	assert.True(t, math.IsNaN(p.Month(time.April)))
}

func TestExplainedVarianceConstantMonth(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()
	for i := range yTrue {
		if i%12 == 4 {
			yTrue[i] = 1
		}
	}

	ev, err := ExplainedVariance(yTrue, yPred, ts)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(ev.Month(time.May)))
	assert.False(t, math.IsNaN(ev.Month(time.April)))
}

func TestRMSE(t *testing.T) {
	y := []float64{0.5, -1.2, 3.3, 2.0}

	rmse, err := RMSE(y, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rmse)

	nrmse, err := NRMSE(y, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, nrmse)

	rmse, err = RMSE([]float64{1, 2, 3, 4}, []float64{2, 2, 3, 6})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.0/4.0), rmse, 1e-12)
}

func TestNRMSEUsesCombinedRange(t *testing.T) {
	yTrue := []float64{0, 1, 2}
	yPred := []float64{0, 1, 6}

	nrmse, err := NRMSE(yTrue, yPred)
	require.NoError(t, err)

	rmse := math.Sqrt(16.0 / 3.0)
	assert.InDelta(t, rmse/6, nrmse, 1e-12, "range must span both series")
}

func TestNRMSEDegenerate(t *testing.T) {
	_, err := NRMSE([]float64{2, 2}, []float64{2, 2})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = NRMSE(nil, nil)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestRMSEPerMonthFourMonths(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	ts := timeseries.NewMonthly(time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC), y).Timestamps

	rmse, err := RMSE(y, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rmse)

	monthly, err := RMSEPerMonth(y, y, ts)
	require.NoError(t, err)

	populated := 0
	for i, v := range monthly {
		month := time.Month(i + 1)
		if month >= time.March && month <= time.June {
			assert.Equal(t, 0.0, v, "month %d", i+1)
			populated++
			continue
		}
		assert.True(t, math.IsNaN(v), "month %d should be undefined", i+1)
	}
	assert.Equal(t, 4, populated)

	mean, err := RMSESeasonalMean(y, y, ts)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(mean))
}

func TestRMSEPerMonth(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()

	monthly, err := RMSEPerMonth(yTrue, yPred, ts)
	require.NoError(t, err)

	jan := timeseries.MonthIndices(ts, time.January)
	y := timeseries.Select(yTrue, jan)
	p := timeseries.Select(yPred, jan)
	mse, mean := 0.0, 0.0
	for i := range y {
		mse += (y[i] - p[i]) * (y[i] - p[i])
		mean += y[i]
	}
	mse /= float64(len(y))
	mean /= float64(len(y))
	variance := 0.0
	for _, v := range y {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(y))

	assert.InDelta(t, math.Sqrt(mse)/math.Sqrt(variance), monthly.Month(time.January), 1e-12)

	seasonal, err := RMSESeasonalMean(yTrue, yPred, ts)
	require.NoError(t, err)
	assert.InDelta(t, monthly.Mean(), seasonal, 1e-15)
}

func TestRMSEPerMonthDegenerate(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()
	for i := range yTrue {
		if i%12 == 8 {
			yTrue[i] = 0.25
		}
	}

	got, err := RMSEPerMonth(yTrue, yPred, ts)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.ErrorContains(t, err, "month 9")
	assert.Equal(t, Monthly{}, got)

	_, err = RMSESeasonalMean(yTrue, yPred, ts)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestShapeMismatch(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()

	_, err := ExplainedVariance(yTrue, yPred[:10], ts)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, _, err = Correlation(yTrue, yPred, ts[:5])
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = RMSEPerMonth(yTrue[:3], yPred, ts)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = RMSE(yTrue, yPred[:1])
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = InsideFraction(yTrue, yPred, yPred[:4], 1)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = SeasonalNLL(yTrue, yPred, yPred, ts[:2], GaussianScore)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSeasonalNLL(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4, 5, 6}
	mean := []float64{1, 2, 3, 4, 5, 6}
	spread := []float64{1, 1, 2, 2, 3, 3}
	ts := []time.Time{
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.November, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, time.November, 1, 0, 0, 0, 0, time.UTC),
	}

	var seen [][]float64
	score := func(y, m, s []float64) float64 {
		seen = append(seen, y)
		return s[0] * 10
	}

	got, err := SeasonalNLL(yTrue, mean, spread, ts, score)
	require.NoError(t, err)

	assert.Len(t, seen, 3, "empty months must not be scored")
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, seen)
	assert.Equal(t, 10.0, got.Month(time.January))
	assert.Equal(t, 20.0, got.Month(time.May))
	assert.Equal(t, 30.0, got.Month(time.November))
	assert.True(t, math.IsNaN(got.Month(time.August)))

	_, err = SeasonalNLL(yTrue, mean, spread, ts, nil)
	assert.Error(t, err)
}

func TestSeasonalNLLGaussianScore(t *testing.T) {
	yTrue, yPred, ts := monthlyCase()
	spread := make([]float64, len(yTrue))
	for i := range spread {
		spread[i] = 0.1
	}

	got, err := SeasonalNLL(yTrue, yPred, spread, ts, GaussianScore)
	require.NoError(t, err)

	// Larger errors later in the year mean a worse (higher) score.
	assert.Less(t, got.Month(time.January), got.Month(time.December))
}

func TestGaussianScore(t *testing.T) {
	// Standard normal density at its mean is 1/sqrt(2π).
	got := GaussianScore([]float64{0, 3}, []float64{0, 3}, []float64{1, 1})
	assert.InDelta(t, 0.5*math.Log(2*math.Pi), got, 1e-12)

	assert.True(t, math.IsNaN(GaussianScore(nil, nil, nil)))
}

func TestInsideFraction(t *testing.T) {
	yTrue := []float64{0, 1, 2, 3}
	mean := []float64{0, 0, 0, 0}
	spread := []float64{1, 1, 1, 1}

	// 0 is inside; 1 sits on the boundary and counts as outside.
	frac, err := InsideFraction(yTrue, mean, spread, DefaultStdLevel)
	require.NoError(t, err)
	assert.Equal(t, 0.25, frac)

	frac, err = InsideFraction(yTrue, mean, spread, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 0.75, frac)

	_, err = InsideFraction(nil, nil, nil, 1)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestInsideFractionPerfectMean(t *testing.T) {
	y := []float64{-1.5, 0.2, 3.7, 9}
	spread := []float64{0.5, 0.5, 0.5, 0.5}

	frac, err := InsideFraction(y, y, spread, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, frac)

	mean := []float64{-1.4, 0.3, 3.6, 9.2}
	frac, err = InsideFraction(y, mean, spread, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, frac)
}

func TestInsideFractionMonotone(t *testing.T) {
	yTrue, yPred, _ := monthlyCase()
	spread := make([]float64, len(yTrue))
	for i := range spread {
		spread[i] = 0.05 + 0.01*float64(i%7)
	}

	prev := 0.0
	for k := 0.0; k <= 5; k += 0.25 {
		frac, err := InsideFraction(yTrue, yPred, spread, k)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, frac, prev, "std level %.2f", k)
		prev = frac
	}
}

func TestSeasonalInsideFraction(t *testing.T) {
	yTrue := []float64{0, 5, 0, 5}
	mean := []float64{0, 0, 0, 0}
	spread := []float64{1, 1, 1, 1}
	ts := timeseries.NewMonthly(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), yTrue).Timestamps

	got, err := SeasonalInsideFraction(yTrue, mean, spread, ts, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.Month(time.January))
	assert.Equal(t, 0.0, got.Month(time.February))
	assert.True(t, math.IsNaN(got.Month(time.May)))
}

func TestExpectedGaussianCoverage(t *testing.T) {
	assert.InDelta(t, 0.6827, ExpectedGaussianCoverage(1), 1e-4)
	assert.InDelta(t, 0.9545, ExpectedGaussianCoverage(2), 1e-4)
	assert.Equal(t, 0.0, ExpectedGaussianCoverage(0))
}

func TestMonthly(t *testing.T) {
	var m Monthly
	for i := range m {
		m[i] = float64(i + 1)
	}

	assert.Equal(t, 6.5, m.Mean())
	assert.Equal(t, 12.0, m.Month(time.December))

	s := m.Slice()
	s[0] = 100
	assert.Equal(t, 1.0, m[0])

	m[3] = math.NaN()
	assert.True(t, math.IsNaN(m.Mean()))
}
