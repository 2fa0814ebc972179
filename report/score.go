package report

import (
	"encoding/json"
	"math"

	"github.com/sartorproj/goskill/skill"
)

// Score is a float64 that renders NaN and ±Inf as null, since neither JSON
// nor the report reader can represent an undefined score otherwise.
type Score float64

// Defined reports whether the score is a finite number.
func (s Score) Defined() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

func (s Score) MarshalYAML() (interface{}, error) {
	if !s.Defined() {
		return nil, nil
	}
	return float64(s), nil
}

// MonthlyScores is a skill.Monthly ready for rendering.
type MonthlyScores [12]Score

func monthlyScores(m skill.Monthly) MonthlyScores {
	var out MonthlyScores
	for i, v := range m {
		out[i] = Score(v)
	}
	return out
}

func undefinedMonthly() MonthlyScores {
	var out MonthlyScores
	for i := range out {
		out[i] = Score(math.NaN())
	}
	return out
}
