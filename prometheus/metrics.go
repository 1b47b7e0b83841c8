package prometheus

import (
	"github.com/hardstock/inventory-service/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// FulfillmentsTotal counts fulfillment attempts by outcome:
	// fulfilled, noop, insufficient_stock, not_found, error.
	FulfillmentsTotal prometheus.CounterVec

	AlertsCreatedTotal prometheus.CounterVec
)

// InitMetrics registers all collectors. Call once at startup.
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HTTPRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	FulfillmentsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_fulfillments_total",
			Help: "Order fulfillment attempts by outcome",
		},
		[]string{"outcome"},
	)

	AlertsCreatedTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_alerts_created_total",
			Help: "Alerts created by type",
		},
		[]string{"type"},
	)
}
