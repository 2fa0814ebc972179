package skill

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrShapeMismatch is returned when input slices or the calendar index
	// are not aligned.
	ErrShapeMismatch = errors.New("skill: shape mismatch")
	// ErrDegenerateInput is returned when a subset has no samples or no
	// spread, so the requested score is undefined.
	ErrDegenerateInput = errors.New("skill: degenerate input")
)

// Monthly holds one score per calendar month. Index i is month i+1.
type Monthly [12]float64

// Month returns the score of calendar month m.
func (s Monthly) Month(m time.Month) float64 {
	return s[m-1]
}

// Slice returns the scores as a slice, January first.
func (s Monthly) Slice() []float64 {
	out := make([]float64, len(s))
	copy(out, s[:])
	return out
}

// Mean returns the arithmetic mean of the 12 scores. A NaN entry makes the
// mean NaN.
func (s Monthly) Mean() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Stratify partitions the calendar index by month and calls fn with the
// positions belonging to each month. A month with no observations gets NaN
// and fn is not called for it. Any error from fn aborts the whole call.
func Stratify(t []time.Time, fn func(idx []int) (float64, error)) (Monthly, error) {
	var groups [12][]int
	for i, ts := range t {
		m := ts.Month()
		groups[m-1] = append(groups[m-1], i)
	}

	var out Monthly
	for i, idx := range groups {
		if len(idx) == 0 {
			out[i] = math.NaN()
			continue
		}
		v, err := fn(idx)
		if err != nil {
			return Monthly{}, fmt.Errorf("month %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func checkAligned(t []time.Time, series ...[]float64) error {
	if err := checkSameLength(series...); err != nil {
		return err
	}
	if len(series) > 0 && len(t) != len(series[0]) {
		return fmt.Errorf("%w: calendar index has %d entries, data has %d", ErrShapeMismatch, len(t), len(series[0]))
	}
	return nil
}

func checkSameLength(series ...[]float64) error {
	for i := 1; i < len(series); i++ {
		if len(series[i]) != len(series[0]) {
			return fmt.Errorf("%w: argument %d has %d entries, expected %d", ErrShapeMismatch, i+1, len(series[i]), len(series[0]))
		}
	}
	return nil
}
