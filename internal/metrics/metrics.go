// Package metrics provides Prometheus metrics for the card arbitrage scout.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Pipeline Metrics
	ListingsAnalyzedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_listings_analyzed_total",
			Help: "Total number of listings run through the analysis pipeline",
		},
	)

	ListingsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_listings_rejected_total",
			Help: "Listings rejected by the cheap rule filter",
		},
	)

	ValuableLeadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_valuable_leads_total",
			Help: "Listings classified as valuable leads",
		},
	)

	ConfidenceHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_confidence_score",
			Help:    "Confidence scores of analyzed listings",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	// Scan Worker Metrics
	ScanBatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_scan_batches_total",
			Help: "Total number of completed scan batches",
		},
	)

	ScanBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_scan_batch_duration_seconds",
			Help:    "Time taken to scan all search terms once",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	ScanErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_scan_errors_total",
			Help: "Scan errors by stage",
		},
		[]string{"stage"}, // "search", "detail", "ai", "image", "persist"
	)

	// AI Metrics
	AICallsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_ai_calls_total",
			Help: "Total inference API calls",
		},
	)

	AILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_ai_latency_seconds",
			Help:    "Inference API call latency",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	AIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_ai_errors_total",
			Help: "Inference API errors by type",
		},
		[]string{"type"}, // "network", "read", "api", "parse", "empty"
	)

	// Lead Store Metrics
	LeadsStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_leads_stored_total",
			Help: "Leads written to the database",
		},
	)
)
