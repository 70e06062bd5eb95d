// Package dashboard turns a month selection into everything the weather
// dashboard displays: KPI scalars, chart descriptions and the data table.
//
// Render is a pure function of the selection and the two immutable tables
// built at startup, so any UI layer can call it per request.
package dashboard

import (
	"time"

	"github.com/lox/inmetdash/internal/metrics"
	"github.com/lox/inmetdash/internal/models"
	"github.com/lox/inmetdash/internal/store"
)

// Result is the complete output for one selection.
type Result struct {
	Selection models.Selection `json:"selection"`
	Rows      int              `json:"rows"`
	KPIs      []KPI            `json:"kpis"`
	Figures   []Figure         `json:"figures"`
	Table     Table            `json:"table"`
}

// KPI returns the KPI with the given id.
func (r *Result) KPI(id string) (KPI, bool) {
	for _, k := range r.KPIs {
		if k.ID == id {
			return k, true
		}
	}
	return KPI{}, false
}

// Figure returns the figure with the given id.
func (r *Result) Figure(id string) (Figure, bool) {
	for _, f := range r.Figures {
		if f.ID == id {
			return f, true
		}
	}
	return Figure{}, false
}

type seriesSpec struct {
	id      string
	title   string
	measure models.Measure
	unit    string
}

var seriesSpecs = []seriesSpec{
	{FigWindSeries, "Velocidade do Vento", models.WindSpeed, "m/s"},
	{FigTempSeries, "Temperatura", models.TempIns, "°C"},
	{FigHumiditySeries, "Umidade", models.HumidityIns, "%"},
	{FigPressureSeries, "Pressão", models.PressureIns, "hPa"},
}

// Render filters the store by sel and builds every dashboard output. The
// monthly bar figures always come from agg and ignore the selection.
func Render(sel models.Selection, obs *store.ObservationStore, agg *store.AggregateView) Result {
	start := time.Now()
	defer func() {
		metrics.RenderLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RendersTotal.WithLabelValues(selectionLabel(sel)).Inc()

	rows := obs.Filter(sel)

	res := Result{
		Selection: models.Selection(sel.String()),
		Rows:      len(rows),
		KPIs:      computeKPIs(rows),
		Figures:   make([]Figure, 0, len(seriesSpecs)+4),
		Table:     projectTable(obs.Columns(), rows),
	}
	for _, spec := range seriesSpecs {
		res.Figures = append(res.Figures, seriesBox(rows, spec))
	}
	res.Figures = append(res.Figures,
		monthlyWind(agg),
		monthlyTempHumidity(agg),
		windHistogram(rows),
		windRoseFigure(rows),
	)
	return res
}

func selectionLabel(sel models.Selection) string {
	if sel.IsAll() {
		return string(models.AllMonths)
	}
	if _, ok := models.MonthNumber(string(sel)); ok {
		return string(sel)
	}
	return "unknown"
}

func seriesBox(rows []models.Observation, spec seriesSpec) Figure {
	f := Figure{ID: spec.id, Kind: KindSeriesBox, Title: spec.title, Unit: spec.unit}
	values := make([]float64, 0, len(rows))
	for _, o := range rows {
		v, ok := o.Value(spec.measure)
		if !ok {
			continue
		}
		values = append(values, v)
		f.Series = append(f.Series, Point{Time: o.ObservedAt, Value: v})
	}
	f.Box = boxSummary(values)
	return f
}

func monthlyWind(agg *store.AggregateView) Figure {
	bars := &BarData{Series: []BarSeries{{Name: "Velocidade", Unit: "m/s", Axis: AxisPrimary}}}
	for _, row := range agg.Rows() {
		v := row.WindSpeed
		bars.Labels = append(bars.Labels, row.MonthName)
		bars.Series[0].Values = append(bars.Series[0].Values, &v)
	}
	return Figure{ID: FigMonthlyWind, Kind: KindBar, Title: "Velocidade Média Mensal", Unit: "m/s", Bars: bars}
}

func monthlyTempHumidity(agg *store.AggregateView) Figure {
	bars := &BarData{Series: []BarSeries{
		{Name: "Temperatura", Unit: "°C", Axis: AxisPrimary},
		{Name: "Umidade", Unit: "%", Axis: AxisSecondary},
	}}
	for _, row := range agg.Rows() {
		bars.Labels = append(bars.Labels, row.MonthName)
		bars.Series[0].Values = append(bars.Series[0].Values, nullable(row.Temperature.Float64, row.Temperature.Valid))
		bars.Series[1].Values = append(bars.Series[1].Values, nullable(row.Humidity.Float64, row.Humidity.Valid))
	}
	return Figure{ID: FigMonthlyTempHum, Kind: KindGroupedBar, Title: "Temperatura e Umidade Médias", Bars: bars}
}

func windHistogram(rows []models.Observation) Figure {
	speeds := make([]float64, len(rows))
	for i, o := range rows {
		speeds[i] = o.WindSpeed
	}
	return Figure{
		ID:        FigWindHistogram,
		Kind:      KindHistogram,
		Title:     "Distribuição do Vento",
		Unit:      "m/s",
		Histogram: histogram(speeds),
	}
}

func windRoseFigure(rows []models.Observation) Figure {
	dirs := make([]float64, len(rows))
	for i, o := range rows {
		dirs[i] = o.WindDir
	}
	return Figure{
		ID:    FigWindRose,
		Kind:  KindPolar,
		Title: "Rosa dos Ventos",
		Unit:  "°",
		Polar: windRose(dirs),
	}
}

func nullable(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options lists the dropdown entries: the all-months sentinel followed by
// each month present in the data, in calendar order.
func Options(obs *store.ObservationStore) []Option {
	opts := []Option{{Label: string(models.AllMonths), Value: string(models.AllMonths)}}
	for _, m := range obs.Months() {
		name, _ := models.MonthName(m)
		opts = append(opts, Option{Label: name, Value: name})
	}
	return opts
}
