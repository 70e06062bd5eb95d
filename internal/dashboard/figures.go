package dashboard

import "time"

type FigureKind string

const (
	KindSeriesBox  FigureKind = "series_box"
	KindBar        FigureKind = "bar"
	KindGroupedBar FigureKind = "grouped_bar"
	KindHistogram  FigureKind = "histogram"
	KindPolar      FigureKind = "polar"
)

// Figure IDs, in the order Render returns them.
const (
	FigWindSeries     = "serie-vento"
	FigTempSeries     = "serie-temp"
	FigHumiditySeries = "serie-umi"
	FigPressureSeries = "serie-pressao"
	FigMonthlyWind    = "media-vento"
	FigMonthlyTempHum = "media-temp-umi"
	FigWindHistogram  = "hist"
	FigWindRose       = "rosa"
)

// FigureIDs lists every figure id in render order.
var FigureIDs = []string{
	FigWindSeries,
	FigTempSeries,
	FigHumiditySeries,
	FigPressureSeries,
	FigMonthlyWind,
	FigMonthlyTempHum,
	FigWindHistogram,
	FigWindRose,
}

// Figure is a renderer-neutral chart description. Exactly one of the
// payload fields is set, matching Kind.
type Figure struct {
	ID    string     `json:"id"`
	Kind  FigureKind `json:"kind"`
	Title string     `json:"title"`
	Unit  string     `json:"unit,omitempty"`

	Box       *BoxSummary `json:"box,omitempty"`
	Series    []Point     `json:"series,omitempty"`
	Bars      *BarData    `json:"bars,omitempty"`
	Histogram []Bin       `json:"histogram,omitempty"`
	Polar     *PolarData  `json:"polar,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindSeriesBox:
		return len(f.Series) == 0
	case KindBar, KindGroupedBar:
		return f.Bars == nil || len(f.Bars.Labels) == 0
	case KindHistogram:
		return len(f.Histogram) == 0
	case KindPolar:
		return f.Polar == nil || f.Polar.Total == 0
	}
	return true
}

// Point is one value of a time series.
type Point struct {
	Time  time.Time `json:"t"`
	Value float64   `json:"v"`
}

// BoxSummary is the distribution panel drawn beside a time series.
// Whiskers end at the furthest values inside 1.5 IQR of the quartiles.
type BoxSummary struct {
	N            int     `json:"n"`
	Min          float64 `json:"min"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     int     `json:"outliers"`
}

// BarData holds one or more bar series over shared category labels.
type BarData struct {
	Labels []string    `json:"labels"`
	Series []BarSeries `json:"series"`
}

type Axis string

const (
	AxisPrimary   Axis = "y"
	AxisSecondary Axis = "y2"
)

// BarSeries values align with BarData.Labels; nil marks a missing mean.
type BarSeries struct {
	Name   string     `json:"name"`
	Unit   string     `json:"unit,omitempty"`
	Axis   Axis       `json:"axis"`
	Values []*float64 `json:"values"`
}

// Bin is a half-open histogram interval [Lo, Hi); the last bin is closed.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// PolarData is a direction frequency rose. Angles are degrees from north,
// increasing clockwise, with zero drawn at the top.
type PolarData struct {
	Clockwise  bool     `json:"clockwise"`
	StartAngle float64  `json:"start_angle"`
	Sectors    []Sector `json:"sectors"`
	Total      int      `json:"total"`
}

type Sector struct {
	Label string  `json:"label"`
	Theta float64 `json:"theta"`
	Width float64 `json:"width"`
	Count int     `json:"count"`
}
