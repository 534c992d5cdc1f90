package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_generation_attempts_total",
			Help: "Total number of model calls made while filling templates",
		},
		[]string{"provider", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_generation_attempt_duration_seconds",
			Help:    "Duration of a single model call including extraction",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"provider"},
	)

	FillFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_fill_failures_total",
			Help: "Total number of fills that failed, by error code",
		},
		[]string{"code"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "article_render_duration_seconds",
			Help: "Duration of HTML template rendering",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests by route",
		},
		[]string{"method", "route"},
	)
)
