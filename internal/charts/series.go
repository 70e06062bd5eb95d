package charts

import (
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/lox/inmetdash/internal/dashboard"
)

// seriesBox draws the time series with horizontal reference lines for the
// quartiles and the mean of its distribution.
func (r *Renderer) seriesBox(f dashboard.Figure) ([]byte, error) {
	points := append([]dashboard.Point(nil), f.Series...)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Time
		ys[i] = p.Value
	}
	// go-chart needs a non-zero x range
	first, last := xs[0], xs[len(xs)-1]
	if !last.After(first) {
		last = first.Add(time.Hour)
		xs = []time.Time{first, last}
		ys = []float64{ys[0], ys[0]}
	}

	c := hex(r.color(f.ID))
	series := []chart.Series{
		chart.TimeSeries{
			Name:    f.Title,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 1.5},
			XValues: xs,
			YValues: ys,
		},
	}

	var yRange *chart.ContinuousRange
	if b := f.Box; b != nil {
		muted := hex(r.Palette.TextMuted)
		series = append(series,
			reference(fmt.Sprintf("Mediana %.1f", b.Median), first, last, b.Median, chart.Style{
				StrokeColor: c.WithAlpha(200), StrokeWidth: 1, StrokeDashArray: []float64{6, 4},
			}),
			reference(fmt.Sprintf("Q1 %.1f", b.Q1), first, last, b.Q1, chart.Style{
				StrokeColor: muted, StrokeWidth: 1, StrokeDashArray: []float64{2, 3},
			}),
			reference(fmt.Sprintf("Q3 %.1f", b.Q3), first, last, b.Q3, chart.Style{
				StrokeColor: muted, StrokeWidth: 1, StrokeDashArray: []float64{2, 3},
			}),
			reference(fmt.Sprintf("Média %.1f", b.Mean), first, last, b.Mean, chart.Style{
				StrokeColor: hex(r.Palette.AccentAlt), StrokeWidth: 1,
			}),
		)
		if b.Min == b.Max {
			yRange = &chart.ContinuousRange{Min: b.Min - 1, Max: b.Max + 1}
		}
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s (%s)", f.Title, f.Unit),
		TitleStyle: r.titleStyle(),
		Width:      Width,
		Height:     SeriesHeight,
		Background: r.background(),
		Canvas:     chart.Style{FillColor: hex(r.Palette.Card)},
		XAxis: chart.XAxis{
			Style:          r.axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01 15h"),
		},
		YAxis: chart.YAxis{
			Name:      f.Unit,
			NameStyle: r.axisStyle(),
			Style:     r.axisStyle(),
			Range:     yRange,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderPNG(ch)
}

func reference(name string, from, to time.Time, v float64, style chart.Style) chart.TimeSeries {
	return chart.TimeSeries{
		Name:    name,
		Style:   style,
		XValues: []time.Time{from, to},
		YValues: []float64{v, v},
	}
}
