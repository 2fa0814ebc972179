package timeseries

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Forecast holds observations and the predicted distribution for each
// timestamp. Spread and Skew are nil when the forecast is a point forecast
// or a plain Gaussian one.
type Forecast struct {
	Name       string
	Timestamps []time.Time
	Observed   []float64
	Mean       []float64
	Spread     []float64
	Skew       []float64
}

// Len returns the number of forecast rows.
func (f *Forecast) Len() int {
	return len(f.Observed)
}

// HasSpread reports whether the forecast carries a predicted spread.
func (f *Forecast) HasSpread() bool {
	return f.Spread != nil
}

// HasSkew reports whether the forecast carries a predicted skew.
func (f *Forecast) HasSkew() bool {
	return f.Skew != nil
}

// Validate checks that all present columns are aligned with Observed.
func (f *Forecast) Validate() error {
	n := len(f.Observed)
	check := func(name string, l int) error {
		if l != n {
			return fmt.Errorf("%w: %s has %d rows, observed has %d", ErrLengthMismatch, name, l, n)
		}
		return nil
	}
	if err := check("timestamps", len(f.Timestamps)); err != nil {
		return err
	}
	if err := check("mean", len(f.Mean)); err != nil {
		return err
	}
	if f.Spread != nil {
		if err := check("spread", len(f.Spread)); err != nil {
			return err
		}
	}
	if f.Skew != nil {
		if err := check("skew", len(f.Skew)); err != nil {
			return err
		}
	}
	return nil
}

// ObservedSeries returns the observations as a Series.
func (f *Forecast) ObservedSeries() *Series {
	return &Series{Timestamps: f.Timestamps, Values: f.Observed, Name: f.Name}
}

// Params packs the predicted distribution into an n×2 (mean, spread) or,
// when withSkew is set, n×3 (mean, spread, skew) matrix.
func (f *Forecast) Params(withSkew bool) (*mat.Dense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !f.HasSpread() {
		return nil, fmt.Errorf("forecast %q has no spread column", f.Name)
	}
	if withSkew && !f.HasSkew() {
		return nil, fmt.Errorf("forecast %q has no skew column", f.Name)
	}
	if f.Len() == 0 {
		return nil, fmt.Errorf("forecast %q is empty", f.Name)
	}

	cols := 2
	if withSkew {
		cols = 3
	}
	params := mat.NewDense(f.Len(), cols, nil)
	params.SetCol(0, f.Mean)
	params.SetCol(1, f.Spread)
	if withSkew {
		params.SetCol(2, f.Skew)
	}
	return params, nil
}
