package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess      = "success"
	OutcomeRejected     = "rejected"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
)

var (
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ihavefood_login_attempts_total",
		Help: "Total number of login submissions by outcome.",
	}, []string{"outcome"})

	IdentityRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ihavefood_identity_request_duration_seconds",
		Help:    "Duration of calls to the identity backend in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	LoginRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ihavefood_login_rate_limited_total",
		Help: "Total number of login submissions refused by the rate limiter.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
