package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vua_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vua_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vua_turns_total",
			Help: "Total conversation turns processed",
		},
		[]string{"channel"}, // "api" or "sms"
	)

	PassagesKept = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vua_passages_kept",
			Help:    "Retrieved passages surviving the relevance threshold per turn",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	SummariesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vua_summaries_computed_total",
			Help: "Total conversation summaries computed",
		},
	)

	SMSSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vua_sms_sent_total",
			Help: "Total outbound SMS attempts",
		},
		[]string{"status"}, // "ok" or "error"
	)

	// External call latency
	RetrievalLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vua_retrieval_latency_seconds",
			Help:    "Semantic index lookup latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	GenerationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vua_generation_latency_seconds",
			Help:    "Chat completion latency",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30},
		},
	)
)
