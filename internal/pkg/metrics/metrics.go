// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cities"

var (
	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "search_jobs",
		Name:      "submitted_total",
		Help:      "Radius search jobs accepted.",
	})

	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "search_jobs",
		Name:      "completed_total",
		Help:      "Radius search jobs that reached the completed state.",
	})

	JobsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "search_jobs",
		Name:      "pending",
		Help:      "Radius search jobs waiting for their deferred computation.",
	})

	JobLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "search_jobs",
		Name:      "latency_seconds",
		Help:      "Time from submission to completion, including the scheduling delay.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 5.5, 6, 7.5, 10, 30},
	})

	JobResultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "search_jobs",
		Name:      "result_cities",
		Help:      "Number of cities found by a radius search.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Search completion events published, by outcome.",
	}, []string{"outcome"})

	EventsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "consumed_total",
		Help:      "Search completion events processed by the audit worker.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
