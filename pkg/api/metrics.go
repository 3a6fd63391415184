package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homenet_client",
			Name:      "requests_total",
			Help:      "Backend requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homenet_client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	unauthorizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "homenet_client",
			Name:      "unauthorized_total",
			Help:      "Responses that ended the session with a 401.",
		},
	)
)
