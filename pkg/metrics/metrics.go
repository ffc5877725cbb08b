package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcome label values
const (
	BookingAccepted = "accepted"
	BookingSlotFull = "slot_full"
	BookingInvalid  = "invalid"
	BookingError    = "error"
)

// Cancellation label values
const (
	CancelByID    = "id"
	CancelByPhone = "phone"

	CancelDeleted  = "deleted"
	CancelNotFound = "not_found"
	CancelError    = "error"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Domain metrics
	Bookings      *prometheus.CounterVec
	Cancellations *prometheus.CounterVec
	EventsFailed  *prometheus.CounterVec
}

// New creates all application metrics and registers them on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with a 4xx or 5xx status",
		}, []string{"method", "path", "class"}),

		Bookings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_bookings_total",
			Help:      "Appointment booking attempts by outcome",
		}, []string{"outcome"}),
		Cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_cancellations_total",
			Help:      "Appointment cancellations by key and outcome",
		}, []string{"key", "outcome"}),
		EventsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_failed_total",
			Help:      "Domain events that could not be published",
		}, []string{"event_type"}),
	}
}

// NewNop returns metrics bound to a private registry, for tests and for
// deployments with monitoring disabled.
func NewNop() *Metrics {
	return New("hospital", prometheus.NewRegistry())
}
