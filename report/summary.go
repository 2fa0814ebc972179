package report

import (
	"time"

	"github.com/sartorproj/goskill/timeseries"
)

// Summary describes the observed values of the whole record or of one
// calendar month. Statistics of an empty month are undefined.
type Summary struct {
	Count int   `json:"count" yaml:"count"`
	Mean  Score `json:"mean" yaml:"mean"`
	Std   Score `json:"std" yaml:"std"`
	Min   Score `json:"min" yaml:"min"`
	Max   Score `json:"max" yaml:"max"`
}

func summarize(s *timeseries.Series) Summary {
	return Summary{
		Count: s.Len(),
		Mean:  Score(s.Mean()),
		Std:   Score(s.Std()),
		Min:   Score(s.Min()),
		Max:   Score(s.Max()),
	}
}

// observedSummaries returns the summary of all observations and one per
// calendar month, January first.
func observedSummaries(f *timeseries.Forecast) (Summary, [12]Summary) {
	observed := f.ObservedSeries()

	var months [12]Summary
	for m := time.January; m <= time.December; m++ {
		months[m-1] = summarize(observed.Month(m))
	}
	return summarize(observed), months
}
