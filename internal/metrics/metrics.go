package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_errors_total",
			Help: "Total API error responses",
		},
		[]string{"path", "code"},
	)

	// RecordsCreated counts rows created through the API per resource.
	RecordsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_records_created_total",
			Help: "Records created per resource",
		},
		[]string{"resource"},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ReqCount, ReqDuration, ErrorCount, RecordsCreated)
	})
}
