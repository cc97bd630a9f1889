// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// History metrics
	SnapshotsRecorded prometheus.Counter
	SnapshotsEvicted  prometheus.Counter
	HistoryLength     prometheus.Gauge
	StateLoads        prometheus.Counter

	// Report metrics
	DomainReportsBuilt    *prometheus.CounterVec
	AggregateReportsBuilt *prometheus.CounterVec
	ReportsGenerated      prometheus.Counter
	RecommendationsFired  *prometheus.CounterVec
	OverallScore          prometheus.Gauge

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec

	// Save store metrics
	StoreQueryDuration *prometheus.HistogramVec
	StoreQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "city_stats"
	}

	return &Metrics{
		SnapshotsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "snapshots_recorded_total",
			Help:      "Total number of turn snapshots recorded",
		}),
		SnapshotsEvicted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "snapshots_evicted_total",
			Help:      "Total number of snapshots evicted from the bounded history",
		}),
		HistoryLength: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "length",
			Help:      "Current number of snapshots held in history",
		}),
		StateLoads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "state_loads_total",
			Help:      "Total number of persisted report states loaded",
		}),

		DomainReportsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "domain_built_total",
			Help:      "Total number of domain reports built by kind",
		}, []string{"kind"}),
		AggregateReportsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "aggregate_built_total",
			Help:      "Total number of aggregate reports built by name",
		}, []string{"name"}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "comprehensive_generated_total",
			Help:      "Total number of comprehensive reports generated",
		}),
		RecommendationsFired: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "recommendations_total",
			Help:      "Total number of recommendations emitted by rule",
		}, []string{"rule"}),
		OverallScore: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "overall_score",
			Help:      "Overall city score of the latest comprehensive report",
		}),

		ExportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "total",
			Help:      "Total number of exports by format and status",
		}, []string{"format", "status"}),
		ExportDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "Export duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),

		StoreQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Save store query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		StoreQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Total number of save store query errors",
		}, []string{"backend", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSnapshot records one recorded turn and the resulting history length.
func RecordSnapshot(evicted bool, length int) {
	DefaultMetrics.SnapshotsRecorded.Inc()
	if evicted {
		DefaultMetrics.SnapshotsEvicted.Inc()
	}
	DefaultMetrics.HistoryLength.Set(float64(length))
}

// RecordStateLoad records a loaded report state.
func RecordStateLoad(length int) {
	DefaultMetrics.StateLoads.Inc()
	DefaultMetrics.HistoryLength.Set(float64(length))
}

// RecordDomainReport increments the domain reports counter.
func RecordDomainReport(kind string) {
	DefaultMetrics.DomainReportsBuilt.WithLabelValues(kind).Inc()
}

// RecordAggregateReport increments the aggregate reports counter.
func RecordAggregateReport(name string) {
	DefaultMetrics.AggregateReportsBuilt.WithLabelValues(name).Inc()
}

// RecordComprehensive records a comprehensive report and its overall score.
func RecordComprehensive(overall float64) {
	DefaultMetrics.ReportsGenerated.Inc()
	DefaultMetrics.OverallScore.Set(overall)
}

// RecordRecommendation increments the recommendations counter for rule.
func RecordRecommendation(rule string) {
	DefaultMetrics.RecommendationsFired.WithLabelValues(rule).Inc()
}

// RecordExport records an export attempt.
func RecordExport(format string, durationSeconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.ExportsTotal.WithLabelValues(format, status).Inc()
	DefaultMetrics.ExportDuration.WithLabelValues(format).Observe(durationSeconds)
}

// RecordStoreQuery records save store query metrics.
func RecordStoreQuery(backend, operation string, seconds float64, err error) {
	DefaultMetrics.StoreQueryDuration.WithLabelValues(backend, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.StoreQueryErrors.WithLabelValues(backend, operation).Inc()
	}
}
