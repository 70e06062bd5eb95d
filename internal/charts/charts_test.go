package charts

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/imagegen"
	"github.com/lox/inmetdash/internal/theme"
)

func decodeSize(t *testing.T, data []byte) image.Point {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img.Bounds().Size()
}

func fptr(f float64) *float64 { return &f }

func TestRenderer_Figure(t *testing.T) {
	r := New(theme.DefaultPalette, nil)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	series := dashboard.Figure{
		ID: dashboard.FigTempSeries, Kind: dashboard.KindSeriesBox, Title: "Temperatura", Unit: "°C",
		Box: &dashboard.BoxSummary{N: 3, Min: 24, Q1: 24.5, Median: 25, Q3: 26, Max: 27, Mean: 25.3},
		Series: []dashboard.Point{
			{Time: start.Add(2 * time.Hour), Value: 27},
			{Time: start, Value: 24},
			{Time: start.Add(time.Hour), Value: 25},
		},
	}
	bar := dashboard.Figure{
		ID: dashboard.FigMonthlyWind, Kind: dashboard.KindBar, Title: "Velocidade Média Mensal", Unit: "m/s",
		Bars: &dashboard.BarData{
			Labels: []string{"Janeiro", "Fevereiro"},
			Series: []dashboard.BarSeries{{Name: "Velocidade", Values: []*float64{fptr(2.1), fptr(3.4)}}},
		},
	}
	hist := dashboard.Figure{
		ID: dashboard.FigWindHistogram, Kind: dashboard.KindHistogram, Title: "Distribuição", Unit: "m/s",
	}
	for i := 0; i < 25; i++ {
		hist.Histogram = append(hist.Histogram, dashboard.Bin{Lo: float64(i) * 0.4, Hi: float64(i+1) * 0.4, Count: i % 7})
	}
	grouped := dashboard.Figure{
		ID: dashboard.FigMonthlyTempHum, Kind: dashboard.KindGroupedBar, Title: "Temperatura e Umidade",
		Bars: &dashboard.BarData{
			Labels: []string{"Janeiro"},
			Series: []dashboard.BarSeries{
				{Name: "Temperatura", Axis: dashboard.AxisPrimary, Values: []*float64{fptr(27)}},
				{Name: "Umidade", Axis: dashboard.AxisSecondary, Values: []*float64{nil}},
			},
		},
	}

	tests := []struct {
		name   string
		fig    dashboard.Figure
		height int
	}{
		{"series", series, SeriesHeight},
		{"bar", bar, BarHeight},
		{"histogram", hist, SeriesHeight},
		{"grouped", grouped, imagegen.BarsHeight},
		{"empty series", dashboard.Figure{ID: dashboard.FigWindSeries, Kind: dashboard.KindSeriesBox, Title: "Vento"}, SeriesHeight},
		{"empty rose", dashboard.Figure{ID: dashboard.FigWindRose, Kind: dashboard.KindPolar, Title: "Rosa"}, imagegen.RoseHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.Figure(tt.fig)
			if err != nil {
				t.Fatalf("Figure: %v", err)
			}
			if got := decodeSize(t, data); got.Y != tt.height {
				t.Errorf("height = %d, want %d", got.Y, tt.height)
			}
		})
	}
}

func TestRenderer_SinglePointSeries(t *testing.T) {
	r := New(theme.DefaultPalette, nil)
	f := dashboard.Figure{
		ID: dashboard.FigWindSeries, Kind: dashboard.KindSeriesBox, Title: "Vento", Unit: "m/s",
		Box:    &dashboard.BoxSummary{N: 1, Min: 3.5, Q1: 3.5, Median: 3.5, Q3: 3.5, Max: 3.5, Mean: 3.5},
		Series: []dashboard.Point{{Time: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), Value: 3.5}},
	}
	data, err := r.Figure(f)
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if got := decodeSize(t, data); got.X != Width {
		t.Errorf("width = %d, want %d", got.X, Width)
	}
}

func TestNiceMax(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-3, 1},
		{3.4, 5},
		{9, 10},
		{42, 50},
		{170, 200},
	}
	for _, tt := range tests {
		if got := niceMax(tt.in); got != tt.want {
			t.Errorf("niceMax(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderer_KPICard(t *testing.T) {
	r := New(theme.DefaultPalette, nil)
	data, err := r.KPICard(dashboard.Result{Selection: "Janeiro", Rows: 1}, "A301")
	if err != nil {
		t.Fatalf("KPICard: %v", err)
	}
	if got := decodeSize(t, data); got.X != imagegen.CardWidth || got.Y != imagegen.CardHeight {
		t.Errorf("size = %v", got)
	}
}
