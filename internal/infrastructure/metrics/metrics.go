// Package metrics holds the Prometheus collectors for the collections core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collections"

var (
	// AllocationsTotal counts allocateNext outcomes: allocated, exhausted, conflict, error.
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "requests_total",
			Help:      "Allocation requests by outcome",
		},
		[]string{"outcome"},
	)

	// DispositionsTotal counts committed dispositions by code and resulting status.
	DispositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "disposition",
			Name:      "recorded_total",
			Help:      "Dispositions recorded by code and resulting case status",
		},
		[]string{"code", "status", "edit"},
	)

	ConstraintsReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "constraint",
			Name:      "released_total",
			Help:      "Once-constraints released by terminal dispositions",
		},
	)

	DistributedCustomersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "campaign",
			Name:      "distributed_customers_total",
			Help:      "Customers assigned by campaign distribution",
		},
	)

	RechurnedCustomersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "campaign",
			Name:      "rechurned_customers_total",
			Help:      "Customers returned to the unassigned pool by rechurn",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)
