package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtmate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtmate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtmate_reservations_created_total",
			Help: "Total number of reservations created",
		},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtmate_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	ReservationConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtmate_reservation_conflicts_total",
			Help: "Total number of reservation attempts rejected for interval overlap",
		},
	)

	CourtCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtmate_court_cache_lookups_total",
			Help: "Court rate cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	StoreErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtmate_store_errors_total",
			Help: "Total number of upstream store failures",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated() {
	ReservationsCreatedTotal.Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordReservationConflict() {
	ReservationConflictsTotal.Inc()
}

func RecordCourtCacheLookup(outcome string) {
	CourtCacheLookupsTotal.WithLabelValues(outcome).Inc()
}

func RecordStoreError() {
	StoreErrorsTotal.Inc()
}
