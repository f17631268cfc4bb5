package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOrderMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.IncCommit(318.60)
	m.IncCommit(42.00)
	m.IncCommitFailure("insufficient_stock")
	m.IncCommitFailure("")
	m.IncRender()
	m.IncAssetFailure("logo")

	if got := testutil.ToFloat64(m.commits); got != 2 {
		t.Fatalf("expected 2 commits, got %v", got)
	}
	if got := testutil.ToFloat64(m.commitFailures.WithLabelValues("insufficient_stock")); got != 1 {
		t.Fatalf("expected 1 stock failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.commitFailures.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty reason to normalize to unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.renders); got != 1 {
		t.Fatalf("expected 1 render, got %v", got)
	}
	if got := testutil.ToFloat64(m.assetFailures.WithLabelValues("logo")); got != 1 {
		t.Fatalf("expected 1 logo failure, got %v", got)
	}
}

func TestOrderMetricsNilSafe(t *testing.T) {
	var m *OrderMetrics
	m.IncCommit(1)
	m.IncCommitFailure("x")
	m.IncRender()
	m.IncAssetFailure("qr")

	empty := NewOrderMetrics(nil)
	empty.IncCommit(1)
	empty.IncRender()
}
