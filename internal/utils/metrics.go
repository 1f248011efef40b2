package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Duration of HTTP requests in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path", "status"})

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of HTTP requests.",
}, []string{"method", "path", "status"})

var InFlightRequests = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "http_in_flight_requests",
	Help: "Current number of in-flight HTTP requests.",
})

var RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "http_rate_limited_total",
	Help: "Total number of requests rejected by the rate limiter.",
})

var RequestTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "http_request_timeouts_total",
	Help: "Total number of requests terminated by the timeout guard.",
})

// Database metrics
var DBQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "db_query_duration_seconds",
	Help:    "Duration of database queries in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"query_type", "repository", "status"})

var DBQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "db_query_errors_total",
	Help: "Total number of failed database queries.",
}, []string{"query_type", "repository"})

// Media metrics
var MediaUploadDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "media_upload_duration_seconds",
	Help:    "Duration of media store uploads in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"resource_type", "status"})

var MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "media_uploads_total",
	Help: "Total number of media store uploads.",
}, []string{"resource_type", "status"})
