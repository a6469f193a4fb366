// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Business metrics track the preview pipeline
var (
	// PreviewRequestsTotal counts preview requests by input source and outcome.
	// source: url, raw_html, none / outcome: success, failure
	PreviewRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preview_requests_total",
			Help: "Total number of preview requests",
		},
		[]string{"source", "outcome"},
	)

	// FetchDuration measures time spent fetching a page, including all redirect hops
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch a page including redirect hops",
			Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 5.0},
		},
	)

	// FetchSize measures fetched HTML size in bytes
	FetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "page_fetch_size_bytes",
			Help: "Fetched HTML size in bytes",
			Buckets: []float64{
				1024, 4096, 16384, 65536, 131072,
				262144, 393216, 524288, // up to the byte cap
			},
		},
	)

	// FetchErrorsTotal counts fetch failures by reason.
	// reason: invalid_url, private_destination, too_many_redirects,
	// body_too_large, timeout, connection_failed, not_html, http_status, internal
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetch_errors_total",
			Help: "Total number of page fetch failures",
		},
		[]string{"reason"},
	)

	// RateLimitedTotal counts requests rejected with 429
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
