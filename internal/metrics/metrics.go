package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObservationsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inmetdash_observations_loaded",
			Help: "Observations held in the in-memory store",
		},
	)

	RowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inmetdash_rows_dropped_total",
			Help: "CSV rows dropped for missing wind speed or direction",
		},
	)

	QualityFlags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmetdash_quality_flags_total",
			Help: "Rows flagged by quality checks at load time",
		},
		[]string{"flag"},
	)

	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmetdash_renders_total",
			Help: "Dashboard renders by month selection",
		},
		[]string{"selection"},
	)

	RenderLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inmetdash_render_latency_seconds",
			Help:    "Filter-and-render pipeline latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmetdash_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	FigureRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmetdash_figure_renders_total",
			Help: "PNG figure renders by figure id and outcome (ok, placeholder, error)",
		},
		[]string{"figure", "outcome"},
	)

	ImageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inmetdash_image_cache_hits_total",
			Help: "Rendered PNGs served from the in-memory cache",
		},
	)

	ImageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inmetdash_image_cache_misses_total",
			Help: "Rendered PNG lookups that required a fresh render",
		},
	)
)
