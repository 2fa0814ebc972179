package report

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sartorproj/goskill/loss"
	"github.com/sartorproj/goskill/skill"
	"github.com/sartorproj/goskill/stats"
	"github.com/sartorproj/goskill/timeseries"
)

// Report collects every skill score for one forecast.
type Report struct {
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Samples int       `json:"samples" yaml:"samples"`
	Start   time.Time `json:"start" yaml:"start"`
	End     time.Time `json:"end" yaml:"end"`

	Observed        Summary     `json:"observed" yaml:"observed"`
	ObservedByMonth [12]Summary `json:"observed_by_month" yaml:"observed_by_month"`

	RMSE             Score `json:"rmse" yaml:"rmse"`
	NRMSE            Score `json:"nrmse" yaml:"nrmse"`
	RMSESeasonalMean Score `json:"rmse_seasonal_mean" yaml:"rmse_seasonal_mean"`

	ExplainedVariance MonthlyScores `json:"explained_variance" yaml:"explained_variance"`
	Correlation       MonthlyScores `json:"correlation" yaml:"correlation"`
	CorrelationPValue MonthlyScores `json:"correlation_p_value" yaml:"correlation_p_value"`
	RMSEPerMonth      MonthlyScores `json:"rmse_per_month" yaml:"rmse_per_month"`

	Coverage        []Coverage     `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	SeasonalNLL     *MonthlyScores `json:"seasonal_nll,omitempty" yaml:"seasonal_nll,omitempty"`
	GaussianNLL     *Score         `json:"gaussian_nll,omitempty" yaml:"gaussian_nll,omitempty"`
	SkewGaussianNLL *Score         `json:"skew_gaussian_nll,omitempty" yaml:"skew_gaussian_nll,omitempty"`

	Residuals *stats.LjungBoxResult `json:"residuals,omitempty" yaml:"residuals,omitempty"`

	// Errors maps a metric name to the reason it could not be computed.
	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Coverage is the calibration of one predictive interval width.
type Coverage struct {
	StdLevel float64       `json:"std_level" yaml:"std_level"`
	Inside   Score         `json:"inside" yaml:"inside"`
	Expected Score         `json:"expected" yaml:"expected"`
	PerMonth MonthlyScores `json:"per_month" yaml:"per_month"`
}

// Build computes every score the forecast supports. A metric that fails is
// recorded in Report.Errors and left undefined; the remaining metrics are
// still computed. Build only fails when the forecast itself is malformed.
func Build(f *timeseries.Forecast, cfg *Config, logger *slog.Logger) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("forecast %q: %w", f.Name, err)
	}
	if f.Len() == 0 {
		return nil, fmt.Errorf("forecast %q is empty", f.Name)
	}

	b := &builder{
		logger: logger.With("forecast", f.Name),
		report: &Report{
			Name:    f.Name,
			Samples: f.Len(),
			Start:   f.Timestamps[0],
			End:     f.Timestamps[f.Len()-1],
		},
	}
	r := b.report
	y, mean, t := f.Observed, f.Mean, f.Timestamps

	r.Observed, r.ObservedByMonth = observedSummaries(f)

	r.RMSE = b.scalar("rmse", func() (float64, error) { return skill.RMSE(y, mean) })
	r.NRMSE = b.scalar("nrmse", func() (float64, error) { return skill.NRMSE(y, mean) })
	r.RMSESeasonalMean = b.scalar("rmse_seasonal_mean", func() (float64, error) { return skill.RMSESeasonalMean(y, mean, t) })

	r.ExplainedVariance = b.monthly("explained_variance", func() (skill.Monthly, error) {
		return skill.ExplainedVariance(y, mean, t)
	})
	r.RMSEPerMonth = b.monthly("rmse_per_month", func() (skill.Monthly, error) {
		return skill.RMSEPerMonth(y, mean, t)
	})

	corr, p, err := skill.Correlation(y, mean, t)
	if b.record("correlation", err) {
		r.Correlation, r.CorrelationPValue = undefinedMonthly(), undefinedMonthly()
	} else {
		r.Correlation, r.CorrelationPValue = monthlyScores(corr), monthlyScores(p)
	}

	residuals := make([]float64, len(y))
	for i := range y {
		residuals[i] = y[i] - mean[i]
	}
	r.Residuals = stats.LjungBox(residuals, cfg.Residuals.Lags)

	if f.HasSpread() {
		b.probabilistic(f, cfg)
	}

	b.logger.Info("skill report built",
		"samples", r.Samples,
		"rmse", float64(r.RMSE),
		"rmse_seasonal_mean", float64(r.RMSESeasonalMean),
		"failed_metrics", len(r.Errors),
	)
	return r, nil
}

type builder struct {
	logger *slog.Logger
	report *Report
}

func (b *builder) probabilistic(f *timeseries.Forecast, cfg *Config) {
	r := b.report
	y, mean, spread, t := f.Observed, f.Mean, f.Spread, f.Timestamps

	for _, level := range cfg.Coverage.StdLevels {
		name := fmt.Sprintf("coverage_%g", level)
		c := Coverage{
			StdLevel: level,
			Expected: Score(skill.ExpectedGaussianCoverage(level)),
		}
		c.Inside = b.scalar(name, func() (float64, error) {
			return skill.InsideFraction(y, mean, spread, level)
		})
		c.PerMonth = b.monthly(name+"_per_month", func() (skill.Monthly, error) {
			return skill.SeasonalInsideFraction(y, mean, spread, t, level)
		})
		r.Coverage = append(r.Coverage, c)
	}

	nll := b.monthly("seasonal_nll", func() (skill.Monthly, error) {
		return skill.SeasonalNLL(y, mean, spread, t, skill.GaussianScore)
	})
	r.SeasonalNLL = &nll

	if params, err := f.Params(false); !b.record("gaussian_nll", err) {
		g := b.scalar("gaussian_nll", func() (float64, error) {
			return loss.GaussianNLL{Epsilon: cfg.Loss.SpreadFloor}.Loss(y, params)
		})
		r.GaussianNLL = &g
	}

	if !f.HasSkew() {
		return
	}
	if params, err := f.Params(true); !b.record("skew_gaussian_nll", err) {
		s := b.scalar("skew_gaussian_nll", func() (float64, error) {
			return loss.SkewGaussianNLL{
				Epsilon: cfg.Loss.SpreadFloor,
				Delta:   cfg.Loss.DensityFloor,
			}.Loss(y, params)
		})
		r.SkewGaussianNLL = &s
	}
}

func (b *builder) scalar(name string, fn func() (float64, error)) Score {
	v, err := fn()
	if b.record(name, err) {
		return Score(math.NaN())
	}
	return Score(v)
}

func (b *builder) monthly(name string, fn func() (skill.Monthly, error)) MonthlyScores {
	m, err := fn()
	if b.record(name, err) {
		return undefinedMonthly()
	}
	return monthlyScores(m)
}

// record notes a metric failure and reports whether there was one.
func (b *builder) record(name string, err error) bool {
	if err == nil {
		return false
	}
	if b.report.Errors == nil {
		b.report.Errors = make(map[string]string)
	}
	b.report.Errors[name] = err.Error()
	b.logger.Warn("metric undefined", "metric", name, "error", err)
	return true
}
