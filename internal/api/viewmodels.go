package api

import (
	"net/url"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/theme"
)

// IndexData is the view model for the full page.
type IndexData struct {
	Title     string
	Options   []dashboard.Option
	Palette   theme.Palette
	Theme     string // optional palette override (e.g., "escuro")
	Dashboard DashboardData
}

// DashboardData is the view model for the dashboard partial: everything
// that changes with the month selection.
type DashboardData struct {
	Selection string
	Rows      int
	KPIs      []dashboard.KPI
	Figures   []FigureView
	Table     TableView
	// KPIImage is the URL of the rendered KPI card.
	KPIImage string
}

// FigureView points the page at one rendered figure.
type FigureView struct {
	ID    string
	Title string
	Kind  dashboard.FigureKind
	Src   string
	Wide  bool
}

func buildDashboardData(res dashboard.Result, q TableQuery, themeName string) DashboardData {
	sel := res.Selection.String()
	imgQuery := url.Values{}
	imgQuery.Set("mes", sel)
	if themeName != "" {
		imgQuery.Set("tema", themeName)
	}
	enc := imgQuery.Encode()

	data := DashboardData{
		Selection: sel,
		Rows:      res.Rows,
		KPIs:      res.KPIs,
		Table:     buildTableView(res.Table, q),
		KPIImage:  "/kpi.png?" + enc,
	}
	for _, f := range res.Figures {
		data.Figures = append(data.Figures, FigureView{
			ID:    f.ID,
			Title: f.Title,
			Kind:  f.Kind,
			Src:   "/figures/" + f.ID + ".png?" + enc,
			Wide:  f.Kind == dashboard.KindSeriesBox,
		})
	}
	return data
}

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status       string         `json:"status"`
	Observations int            `json:"observations"`
	Months       []string       `json:"months"`
	Dropped      int            `json:"dropped"`
	Flags        map[string]int `json:"flags,omitempty"`
}
