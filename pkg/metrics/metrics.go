package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every HTTP request, labelled by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	// Orders rejected because a referenced product does not exist
	OrderProductValidationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_product_validation_failures_total",
		Help: "Order mutations rejected for referencing unknown products",
	})

	GamesUpstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "games_upstream_errors_total",
		Help: "Failed calls to the game catalog API",
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		OrdersCreated,
		OrderProductValidationFailures,
		GamesUpstreamErrors,
	)
}
