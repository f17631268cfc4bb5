package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order commit and invoice render outcomes.
type OrderMetrics struct {
	commits        prometheus.Counter
	commitFailures *prometheus.CounterVec
	orderValue     prometheus.Histogram
	renders        prometheus.Counter
	assetFailures  *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	commits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_commits_total",
		Help: "Successfully committed orders.",
	})
	commitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_commit_failures_total",
		Help: "Rejected order commits by reason.",
	}, []string{"reason"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_grand_total_rupees",
		Help:    "Grand total of committed orders in rupees.",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})
	renders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invoice_renders_total",
		Help: "Rendered invoice documents.",
	})
	assetFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_asset_failures_total",
		Help: "Invoice asset fetch or decode failures by asset.",
	}, []string{"asset"})
	reg.MustRegister(commits, commitFailures, orderValue, renders, assetFailures)
	return &OrderMetrics{
		commits:        commits,
		commitFailures: commitFailures,
		orderValue:     orderValue,
		renders:        renders,
		assetFailures:  assetFailures,
	}
}

// IncCommit records a successful commit with its grand total.
func (m *OrderMetrics) IncCommit(grandTotal float64) {
	if m == nil || m.commits == nil {
		return
	}
	m.commits.Inc()
	m.orderValue.Observe(grandTotal)
}

// IncCommitFailure increments the failure counter for the given reason.
func (m *OrderMetrics) IncCommitFailure(reason string) {
	if m == nil || m.commitFailures == nil {
		return
	}
	m.commitFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncRender records a completed invoice render.
func (m *OrderMetrics) IncRender() {
	if m == nil || m.renders == nil {
		return
	}
	m.renders.Inc()
}

// IncAssetFailure increments the asset failure counter for the named asset.
func (m *OrderMetrics) IncAssetFailure(asset string) {
	if m == nil || m.assetFailures == nil {
		return
	}
	m.assetFailures.WithLabelValues(normalizeLabel(asset)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
