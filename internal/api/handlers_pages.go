package api

import (
	"bytes"
	"net/http"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/models"
	"github.com/lox/inmetdash/internal/theme"
)

func selectionFrom(r *http.Request) models.Selection {
	return models.Selection(r.URL.Query().Get("mes"))
}

// render runs the pipeline for the request's month selection.
func (s *Server) render(r *http.Request) dashboard.Result {
	return dashboard.Render(selectionFrom(r), s.obs, s.agg)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	res := s.render(r)
	themeName := r.URL.Query().Get("tema")

	data := IndexData{
		Title:     s.title,
		Options:   dashboard.Options(s.obs),
		Palette:   theme.GetPalette(themeName),
		Theme:     themeName,
		Dashboard: buildDashboardData(res, parseTableQuery(r.URL.Query()), themeName),
	}
	s.writeHTML(w, "index.html", data)
}

func (s *Server) handleDashboardPartial(w http.ResponseWriter, r *http.Request) {
	res := s.render(r)
	q := parseTableQuery(r.URL.Query())
	q.Page = 1
	s.writeHTML(w, "dashboard.html", buildDashboardData(res, q, r.URL.Query().Get("tema")))
}

func (s *Server) handleTablePartial(w http.ResponseWriter, r *http.Request) {
	res := s.render(r)
	s.writeHTML(w, "table.html", buildTableView(res.Table, parseTableQuery(r.URL.Query())))
}

// writeHTML executes the named template and writes it as one response.
func (s *Server) writeHTML(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("write response failed", "template", name, "error", err)
	}
}
