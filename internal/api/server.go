package api

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/inmetdash/internal/imagegen"
	"github.com/lox/inmetdash/internal/store"
)

// imageCacheSize bounds the rendered PNG cache: every figure and KPI card
// for every month under both palettes fits comfortably.
const imageCacheSize = 512

type Server struct {
	obs     *store.ObservationStore
	agg     *store.AggregateView
	addr    string
	title   string
	station string
	logger  *slog.Logger
	tmpl    *template.Template
	images  *imagegen.Cache
}

func NewServer(obs *store.ObservationStore, agg *store.AggregateView, addr string, logger *slog.Logger) (*Server, error) {
	tmpl, err := parseTemplates(templateFS)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		obs:    obs,
		agg:    agg,
		addr:   addr,
		title:  "Dashboard Meteorológico INMET",
		logger: logger,
		tmpl:   tmpl,
		images: imagegen.NewCache(imageCacheSize),
	}, nil
}

// SetTitle overrides the page heading.
func (s *Server) SetTitle(title string) {
	if title != "" {
		s.title = title
	}
}

// SetStation names the station code shown on the KPI card.
func (s *Server) SetStation(code string) {
	s.station = code
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /partials/dashboard", s.handleDashboardPartial)
	mux.HandleFunc("GET /partials/table", s.handleTablePartial)
	mux.HandleFunc("GET /api/render", s.handleAPIRender)
	mux.HandleFunc("GET /api/months", s.handleAPIMonths)
	mux.HandleFunc("GET /figures/{file}", s.handleFigure)
	mux.HandleFunc("GET /kpi.png", s.handleKPIImage)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.requestLogger(mux)
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("http shutdown", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", s.addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
