// Package metrics registers the service's prometheus collectors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route, method and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindtrack_http_requests_total",
		Help: "Total HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mindtrack_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ReportDuration tracks how long report computations take, by report kind
	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mindtrack_report_duration_seconds",
		Help:    "Report computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"report"})

	// ReportErrors counts failed report computations by report kind and error code
	ReportErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindtrack_report_errors_total",
		Help: "Total failed report computations",
	}, []string{"report", "code"})

	// Logins counts login attempts by result
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindtrack_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	// SessionsSwept counts expired sessions removed by the scheduler
	SessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mindtrack_sessions_swept_total",
		Help: "Expired sessions removed by the sweeper",
	})

	// RateLimited counts rejected requests
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mindtrack_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)
