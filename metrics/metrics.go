package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of purchase orders accepted",
		},
	)

	TicketVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_verifications_total",
			Help: "Total number of ticket verification attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Register registers all Prometheus metrics.
func Register() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(TicketVerificationsTotal)
}
