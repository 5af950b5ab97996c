package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	SnapshotHit  = "hit"
	SnapshotMiss = "miss"

	ExportOK     = "ok"
	ExportFailed = "failed"

	StatusUpdateApplied    = "applied"
	StatusUpdateRolledBack = "rolled_back"
	StatusUpdateConflict   = "conflict"
)

// ReportMetrics captures order report activity. A nil *ReportMetrics is
// valid and records nothing.
type ReportMetrics struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	snapshots     *prometheus.CounterVec
	exports       *prometheus.CounterVec
	exportBytes   *prometheus.HistogramVec
	statusUpdates *prometheus.CounterVec
}

// NewReportMetrics registers the report collectors with registerer, or
// with the default registerer when nil.
func NewReportMetrics(registerer prometheus.Registerer, serviceName string) *ReportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if serviceName == "" {
		serviceName = "farmstore-admin"
	}
	constLabels := prometheus.Labels{"service": serviceName}

	m := &ReportMetrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_report_builds_total",
			Help:        "Order report views built, by period kind.",
			ConstLabels: constLabels,
		}, []string{"period"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "order_report_build_duration_seconds",
			Help:        "Time to load and aggregate an order report view.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"period"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_report_snapshot_lookups_total",
			Help:        "Order snapshot cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_report_exports_total",
			Help:        "Order report exports by format and outcome.",
			ConstLabels: constLabels,
		}, []string{"format", "outcome"}),
		exportBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "order_report_export_bytes",
			Help:        "Size of generated order report documents.",
			Buckets:     prometheus.ExponentialBuckets(1024, 4, 8),
			ConstLabels: constLabels,
		}, []string{"format"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_status_updates_total",
			Help:        "Optimistic order status updates by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	registerer.MustRegister(m.builds, m.buildDuration, m.snapshots, m.exports, m.exportBytes, m.statusUpdates)
	return m
}

func (m *ReportMetrics) ObserveBuild(period string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(period).Inc()
	m.buildDuration.WithLabelValues(period).Observe(elapsed.Seconds())
}

func (m *ReportMetrics) IncSnapshot(result string) {
	if m == nil {
		return
	}
	m.snapshots.WithLabelValues(result).Inc()
}

func (m *ReportMetrics) ObserveExport(format, outcome string, size int) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, outcome).Inc()
	if outcome == ExportOK {
		m.exportBytes.WithLabelValues(format).Observe(float64(size))
	}
}

func (m *ReportMetrics) IncStatusUpdate(outcome string) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(outcome).Inc()
}
