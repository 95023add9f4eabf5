package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	UploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Total number of upload attempts",
		},
	)

	UploadsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_failed_total",
			Help: "Total number of failed uploads",
		},
	)
)
