package api

import (
	"net/http"
	"slices"
	"strings"

	"github.com/lox/inmetdash/internal/charts"
	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/models"
	"github.com/lox/inmetdash/internal/theme"
)

// handleFigure serves /figures/{id}.png for the requested month.
// Supports ?tema= palette override (e.g., ?tema=escuro).
func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || !slices.Contains(dashboard.FigureIDs, id) {
		http.NotFound(w, r)
		return
	}

	themeName := r.URL.Query().Get("tema")
	key := strings.Join([]string{id, cacheSelection(selectionFrom(r)), themeName}, "|")
	data, err := s.images.GetOrRender(key, func() ([]byte, error) {
		res := s.render(r)
		fig, _ := res.Figure(id)
		return charts.New(theme.GetPalette(themeName), s.logger).Figure(fig)
	})
	if err != nil {
		s.logger.Error("figure render failed", "figure", id, "error", err)
		http.Error(w, "failed to render figure", http.StatusInternalServerError)
		return
	}
	servePNG(w, data)
}

// handleKPIImage serves the KPI summary card for the requested month.
func (s *Server) handleKPIImage(w http.ResponseWriter, r *http.Request) {
	themeName := r.URL.Query().Get("tema")
	key := strings.Join([]string{"kpi", cacheSelection(selectionFrom(r)), themeName}, "|")
	data, err := s.images.GetOrRender(key, func() ([]byte, error) {
		return charts.New(theme.GetPalette(themeName), s.logger).KPICard(s.render(r), s.station)
	})
	if err != nil {
		s.logger.Error("kpi card render failed", "error", err)
		http.Error(w, "failed to render kpi card", http.StatusInternalServerError)
		return
	}
	servePNG(w, data)
}

// cacheSelection collapses every unknown month name onto one key; they all
// render the same empty dashboard.
func cacheSelection(sel models.Selection) string {
	if sel.IsAll() {
		return string(models.AllMonths)
	}
	if _, ok := models.MonthNumber(string(sel)); ok {
		return string(sel)
	}
	return "?"
}

func servePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
