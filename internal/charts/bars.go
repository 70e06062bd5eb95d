package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/lox/inmetdash/internal/dashboard"
)

// labelEvery thins histogram tick labels so 25 bins stay legible.
const labelEvery = 5

// bar draws a single-series bar chart over the figure's labels.
func (r *Renderer) bar(f dashboard.Figure) ([]byte, error) {
	if len(f.Bars.Series) == 0 {
		return nil, fmt.Errorf("figure %s has no bar series", f.ID)
	}
	s := f.Bars.Series[0]
	style := r.barStyle(f.ID)

	bars := make([]chart.Value, 0, len(f.Bars.Labels))
	top := 0.0
	for i, label := range f.Bars.Labels {
		v := 0.0
		if i < len(s.Values) && s.Values[i] != nil {
			v = *s.Values[i]
		}
		top = math.Max(top, v)
		bars = append(bars, chart.Value{Label: label, Value: v, Style: style})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s (%s)", f.Title, f.Unit),
		TitleStyle: r.titleStyle(),
		Width:      Width,
		Height:     BarHeight,
		Background: r.background(),
		Canvas:     chart.Style{FillColor: hex(r.Palette.Card)},
		BarWidth:   40,
		BarSpacing: 16,
		XAxis:      r.axisStyle(),
		YAxis: chart.YAxis{
			Style: r.axisStyle(),
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(top)},
		},
		Bars: bars,
	}
	return renderPNG(bc)
}

// histogram draws equal-width bins as adjacent bars.
func (r *Renderer) histogram(f dashboard.Figure) ([]byte, error) {
	style := r.barStyle(f.ID)

	bars := make([]chart.Value, len(f.Histogram))
	top := 0
	for i, b := range f.Histogram {
		label := ""
		if i%labelEvery == 0 || i == len(f.Histogram)-1 {
			label = fmt.Sprintf("%.1f", b.Lo)
		}
		bars[i] = chart.Value{Label: label, Value: float64(b.Count), Style: style}
		top = max(top, b.Count)
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s (%s)", f.Title, f.Unit),
		TitleStyle: r.titleStyle(),
		Width:      Width,
		Height:     SeriesHeight,
		Background: r.background(),
		Canvas:     chart.Style{FillColor: hex(r.Palette.Card)},
		BarWidth:   20,
		BarSpacing: 6,
		XAxis:      r.axisStyle(),
		YAxis: chart.YAxis{
			Name:  "Frequência",
			Style: r.axisStyle(),
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(float64(top))},
		},
		Bars: bars,
	}
	return renderPNG(bc)
}

func (r *Renderer) barStyle(id string) chart.Style {
	c := hex(r.color(id))
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

// niceMax pads v by 10% and rounds up to 1, 2 or 5 times a power of ten.
// Non-positive input yields 1 so the axis range is never empty.
func niceMax(v float64) float64 {
	v *= 1.1
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}
