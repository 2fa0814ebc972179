package report

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	evColor       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	nrmseColor    = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	coverageColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

type barSeries struct {
	label  string
	values MonthlyScores
	color  color.Color
}

// Plot draws the monthly scores as grouped bars and saves the chart to
// path. The format follows the extension (.png or .svg). Undefined months
// are drawn as empty bars.
func Plot(r *Report, path string) error {
	p := plot.New()
	p.Title.Text = "Seasonal skill"
	if r.Name != "" {
		p.Title.Text += ": " + r.Name
	}
	p.Y.Label.Text = "score"
	p.Y.Min = 0

	series := []barSeries{
		{"r²", r.ExplainedVariance, evColor},
		{"RMSE/σ", r.RMSEPerMonth, nrmseColor},
	}
	for _, c := range r.Coverage {
		if c.StdLevel == 1 {
			series = append(series, barSeries{"1σ coverage", c.PerMonth, coverageColor})
		}
	}

	width := vg.Points(8)
	for i, s := range series {
		bars, err := plotter.NewBarChart(barValues(s.values), width)
		if err != nil {
			return fmt.Errorf("plot %s: %w", s.label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = s.color
		bars.Offset = width * vg.Length(float64(i)-float64(len(series)-1)/2)
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	p.Legend.Top = true

	names := make([]string, 12)
	for i := range names {
		names[i] = time.Month(i + 1).String()[:3]
	}
	p.NominalX(names...)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func barValues(m MonthlyScores) plotter.Values {
	v := make(plotter.Values, len(m))
	for i, s := range m {
		if s.Defined() {
			v[i] = float64(s)
		}
	}
	return v
}
