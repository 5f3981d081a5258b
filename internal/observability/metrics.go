package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	requestLatencySeconds *prometheus.HistogramVec
	storeOperationsTotal  *prometheus.CounterVec
	eventsPublishedTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the gateway.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of gateway requests served.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_request_latency_seconds",
			Help:    "Latency distribution for gateway requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		storeOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_store_operations_total",
			Help: "Store operations issued by the gateway, by outcome.",
		}, []string{"operation", "outcome"})

		eventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_events_published_total",
			Help: "Submission events published per broker, by outcome.",
		}, []string{"broker", "outcome"})

		prometheus.MustRegister(requestsTotal, requestLatencySeconds, storeOperationsTotal, eventsPublishedTotal)
	})
}

// Requests exposes the counter for gateway requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// RequestLatency exposes the latency histogram for gateway requests.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// StoreOperations exposes the counter for select-all and insert-one calls.
func StoreOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return storeOperationsTotal
}

// EventsPublished exposes the counter for submission event publication.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublishedTotal
}
