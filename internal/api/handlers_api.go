package api

import (
	"encoding/json"
	"net/http"

	"github.com/lox/inmetdash/internal/dashboard"
)

func (s *Server) handleAPIRender(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.render(r))
}

func (s *Server) handleAPIMonths(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dashboard.Options(s.obs))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.obs.Stats()
	health := HealthStatus{
		Status:       "ok",
		Observations: s.obs.Len(),
		Months:       make([]string, 0, 12),
		Dropped:      stats.Dropped,
		Flags:        stats.Flags,
	}
	for _, opt := range dashboard.Options(s.obs)[1:] {
		health.Months = append(health.Months, opt.Value)
	}
	if health.Observations == 0 {
		health.Status = "empty"
	}
	s.writeJSON(w, http.StatusOK, health)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode json response", "error", err)
	}
}
