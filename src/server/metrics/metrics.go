// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saaskit_http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saaskit_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// HTTPActiveRequests gauges in-flight requests.
	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "saaskit_http_active_requests",
			Help: "Requests currently being served",
		},
	)

	// AuthAttempts counts login outcomes: success, bad_credentials,
	// inactive.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saaskit_auth_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Signups counts completed registrations.
	Signups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saaskit_signups_total",
			Help: "Completed account registrations",
		},
	)

	// EmailsSent counts outbound mail by kind: verification, reset,
	// contact.
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saaskit_emails_sent_total",
			Help: "Outbound emails by kind",
		},
		[]string{"kind"},
	)

	// SessionsPurged counts expired sessions removed by the scheduler.
	SessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saaskit_sessions_purged_total",
			Help: "Expired sessions removed by cleanup",
		},
	)
)
