// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// LatencyBuckets spans fast static routes up to the upstream timeout.
var LatencyBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// RequestsTotal counts inbound HTTP requests by method, route and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nchc_wrapper_requests_total",
			Help: "Inbound HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nchc_wrapper_request_duration_seconds",
			Help:    "Inbound HTTP request duration",
			Buckets: LatencyBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequestsTotal counts calls to the chat completions API by outcome:
	// ok, status, timeout or transport. The model label is a catalog id or
	// "other".
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nchc_wrapper_upstream_requests_total",
			Help: "Upstream chat completion calls",
		},
		[]string{"model", "outcome", "status"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nchc_wrapper_upstream_latency_seconds",
			Help:    "Upstream chat completion latency",
			Buckets: LatencyBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UpstreamRequestsTotal,
		UpstreamLatency,
	)
}

// StatusClass renders a status code as "2xx", "4xx" and so on.
func StatusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	return strconv.Itoa(code/100) + "xx"
}
