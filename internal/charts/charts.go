// Package charts renders dashboard figures to PNG. Time series, single-axis
// bars and histograms go through go-chart; the wind rose and the dual-axis
// grouped bars are drawn by imagegen.
package charts

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/imagegen"
	"github.com/lox/inmetdash/internal/metrics"
	"github.com/lox/inmetdash/internal/theme"
)

const (
	Width        = 800
	SeriesHeight = 360
	BarHeight    = 400
)

// Renderer draws figures with a fixed palette.
type Renderer struct {
	Palette theme.Palette
	Logger  *slog.Logger
}

// New returns a Renderer. A nil logger discards render warnings.
func New(p theme.Palette, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{Palette: p, Logger: logger}
}

// Figure renders f as a PNG. Figures with nothing to plot, and figures
// go-chart refuses to draw, come back as a titled placeholder.
func (r *Renderer) Figure(f dashboard.Figure) ([]byte, error) {
	if f.Empty() {
		metrics.FigureRenders.WithLabelValues(f.ID, "placeholder").Inc()
		return imagegen.Placeholder(Width, heightFor(f.Kind), f.Title, r.Palette)
	}

	var (
		data []byte
		err  error
	)
	switch f.Kind {
	case dashboard.KindSeriesBox:
		data, err = r.seriesBox(f)
	case dashboard.KindBar:
		data, err = r.bar(f)
	case dashboard.KindHistogram:
		data, err = r.histogram(f)
	case dashboard.KindGroupedBar:
		data, err = imagegen.GroupedBars(f.Title, f.Bars, r.Palette)
	case dashboard.KindPolar:
		data, err = imagegen.WindRose(f.Title, f.Polar, r.Palette, r.color(f.ID))
	default:
		return nil, fmt.Errorf("unknown figure kind %q", f.Kind)
	}
	if err != nil {
		r.Logger.Warn("figure render failed, using placeholder", "figure", f.ID, "error", err)
		metrics.FigureRenders.WithLabelValues(f.ID, "error").Inc()
		return imagegen.Placeholder(Width, heightFor(f.Kind), f.Title, r.Palette)
	}
	metrics.FigureRenders.WithLabelValues(f.ID, "ok").Inc()
	return data, nil
}

// KPICard renders the KPI summary card for res.
func (r *Renderer) KPICard(res dashboard.Result, station string) ([]byte, error) {
	return imagegen.GenerateKPICard(imagegen.KPICardData{
		Station:   station,
		Selection: res.Selection.String(),
		Rows:      res.Rows,
		KPIs:      res.KPIs,
	}, r.Palette)
}

func heightFor(kind dashboard.FigureKind) int {
	switch kind {
	case dashboard.KindBar, dashboard.KindGroupedBar:
		return BarHeight
	case dashboard.KindPolar:
		return imagegen.RoseHeight
	}
	return SeriesHeight
}

// color returns the palette color assigned to a figure id.
func (r *Renderer) color(id string) string {
	return r.Palette.SeriesColor(max(slices.Index(dashboard.FigureIDs, id), 0))
}

func hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func (r *Renderer) background() chart.Style {
	return chart.Style{
		FillColor: hex(r.Palette.Card),
		Padding:   chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16},
	}
}

func (r *Renderer) titleStyle() chart.Style {
	return chart.Style{FontColor: hex(r.Palette.Text), FontSize: 13}
}

func (r *Renderer) axisStyle() chart.Style {
	return chart.Style{
		FontColor:   hex(r.Palette.TextMuted),
		StrokeColor: hex(r.Palette.CardBorder),
		FontSize:    9,
	}
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(c renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
