package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestReportMetrics(t *testing.T) {
	m := NewReportMetrics(prometheus.NewRegistry(), "test")

	m.ObserveBuild("monthly", 20*time.Millisecond)
	m.ObserveBuild("monthly", 30*time.Millisecond)
	m.IncSnapshot(SnapshotMiss)
	m.IncSnapshot(SnapshotHit)
	m.IncSnapshot(SnapshotHit)
	m.ObserveExport("csv", ExportOK, 2048)
	m.ObserveExport("xlsx", ExportFailed, 0)
	m.IncStatusUpdate(StatusUpdateRolledBack)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.builds.WithLabelValues("monthly")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshots.WithLabelValues(SnapshotHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("csv", ExportOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("xlsx", ExportFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues(StatusUpdateRolledBack)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.exportBytes))
}

func TestNilReportMetricsIsNoop(t *testing.T) {
	var m *ReportMetrics
	assert.NotPanics(t, func() {
		m.ObserveBuild("daily", time.Second)
		m.IncSnapshot(SnapshotHit)
		m.ObserveExport("csv", ExportOK, 10)
		m.IncStatusUpdate(StatusUpdateApplied)
	})
}
