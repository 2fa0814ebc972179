// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when columns of a frame are not aligned.
var ErrLengthMismatch = errors.New("columns must have the same length")

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewMonthly creates a series with one observation per calendar month,
// starting at the month containing start.
func NewMonthly(start time.Time, values []float64) *Series {
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = base.AddDate(0, i, 0)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return stat.Mean(s.Values, nil)
}

// Std calculates the population standard deviation of the series.
func (s *Series) Std() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.PopVariance(s.Values, nil))
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Month returns the observations that fall in calendar month m.
func (s *Series) Month(m time.Month) *Series {
	idx := MonthIndices(s.Timestamps, m)
	timestamps := make([]time.Time, len(idx))
	for i, j := range idx {
		timestamps[i] = s.Timestamps[j]
	}
	return &Series{
		Timestamps: timestamps,
		Values:     Select(s.Values, idx),
		Name:       s.Name + "_" + m.String(),
	}
}

// MonthIndices returns the positions in timestamps whose calendar month is m,
// in ascending order.
func MonthIndices(timestamps []time.Time, m time.Month) []int {
	var idx []int
	for i, ts := range timestamps {
		if ts.Month() == m {
			idx = append(idx, i)
		}
	}
	return idx
}

// Select gathers values at the given positions into a new slice.
func Select(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
