// Package metrics provides Prometheus metrics for the railbook client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the API client.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// Outgoing request metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Booking workflow metrics
	SeatSnapshotsApplied   prometheus.Counter
	SeatSnapshotsDiscarded prometheus.Counter
}

// New creates and registers all client metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	apiRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railbook_api_requests_total",
			Help: "Total number of requests issued to the booking backend",
		},
		[]string{"operation", "status"},
	)

	apiRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "railbook_api_request_duration_seconds",
			Help:    "Booking backend request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	seatSnapshotsApplied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "railbook_seat_snapshots_applied_total",
		Help: "Seat availability responses applied to the visible snapshot",
	})

	seatSnapshotsDiscarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "railbook_seat_snapshots_discarded_total",
		Help: "Stale seat availability responses discarded by the last-write-wins check",
	})

	registry.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		seatSnapshotsApplied,
		seatSnapshotsDiscarded,
	)

	return &Metrics{
		Registry:               registry,
		APIRequestsTotal:       apiRequestsTotal,
		APIRequestDuration:     apiRequestDuration,
		SeatSnapshotsApplied:   seatSnapshotsApplied,
		SeatSnapshotsDiscarded: seatSnapshotsDiscarded,
	}
}

// ObserveRequest records one completed backend request. A status of 0
// means the request never produced an HTTP response (transport error).
func (m *Metrics) ObserveRequest(operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APIRequestsTotal.WithLabelValues(operation, label).Inc()
	m.APIRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
