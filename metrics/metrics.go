package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// ObjectStoreOperations counts uploads and deletes against the object store.
	ObjectStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_object_store_operations_total",
			Help: "Total number of object store operations",
		},
		[]string{"operation", "status"},
	)
	// OrphanedObjects counts remote objects left behind after a failed best-effort removal.
	OrphanedObjects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_orphaned_objects_total",
			Help: "Remote objects that could not be removed",
		},
		[]string{"folder"},
	)
	// Notifications counts contact notification attempts.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_notifications_total",
			Help: "Contact notification emails by outcome",
		},
		[]string{"status"},
	)
)

// Status label helper.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
