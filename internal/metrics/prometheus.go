package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Engine metrics
	EngineQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delphi_engine_queries_total",
			Help: "Total number of engine operations executed",
		},
		[]string{"operation", "status"}, // status: success|error
	)

	EngineQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "delphi_engine_query_duration_seconds",
			Help:    "Engine operation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)

	// Cache metrics
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delphi_cache_requests_total",
			Help: "Total number of result cache lookups",
		},
		[]string{"operation", "result"}, // result: hit|miss|error
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(EngineQueries)
	prometheus.MustRegister(EngineQueryDuration)
	prometheus.MustRegister(CacheRequests)
}

// Handler returns the HTTP handler for the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEngineQuery records one engine operation execution
func RecordEngineQuery(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	EngineQueries.WithLabelValues(operation, status).Inc()
	EngineQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheRequest records one result cache lookup outcome
func RecordCacheRequest(operation, result string) {
	CacheRequests.WithLabelValues(operation, result).Inc()
}
