package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the console gateway.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec   // gateway requests by method and status class
	RequestDuration  *prometheus.HistogramVec // gateway request durations by route area
	CacheHits        *prometheus.CounterVec   // cache hits by entity type
	CacheMisses      *prometheus.CounterVec   // cache misses by entity type
	CacheFetches     *prometheus.CounterVec   // upstream fetches by entity type and outcome
	CacheInvalidates *prometheus.CounterVec   // explicit invalidations by entity type
	ImportRows       *prometheus.CounterVec   // import rows by disposition: submitted, dropped, skipped
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_requests_total",
			Help: "Total gateway requests.",
		}, []string{"method", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_request_duration_seconds",
			Help:    "Gateway request durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"area"}),
		CacheHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_cache_hits_total",
			Help: "Entity cache hits.",
		}, []string{"entity"}),
		CacheMisses: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_cache_misses_total",
			Help: "Entity cache misses.",
		}, []string{"entity"}),
		CacheFetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_cache_fetches_total",
			Help: "Upstream fetches triggered by the cache.",
		}, []string{"entity", "outcome"}),
		CacheInvalidates: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_cache_invalidations_total",
			Help: "Explicit cache invalidations.",
		}, []string{"entity"}),
		ImportRows: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_import_rows_total",
			Help: "Bulk import rows by disposition.",
		}, []string{"disposition"}),
	}
}
