package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SalesMetrics records settlement activity for the terminal process.
type SalesMetrics struct {
	tenders    *prometheus.CounterVec
	sales      prometheus.Counter
	saleTotals prometheus.Histogram
	discarded  prometheus.Counter
}

// NewSalesMetrics registers the settlement metrics on the provided registerer.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	tenders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tenders_accepted_total",
		Help: "Accepted tenders by method.",
	}, []string{"method"})
	sales := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_committed_total",
		Help: "Finalized sales.",
	})
	saleTotals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sale_total_amount",
		Help:    "Distribution of committed sale totals.",
		Buckets: prometheus.ExponentialBuckets(1, 2.5, 10),
	})
	discarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_discarded_total",
		Help: "Settlement sessions cancelled before commit.",
	})
	reg.MustRegister(tenders, sales, saleTotals, discarded)
	return &SalesMetrics{
		tenders:    tenders,
		sales:      sales,
		saleTotals: saleTotals,
		discarded:  discarded,
	}
}

// IncTender counts an accepted tender for the method.
func (m *SalesMetrics) IncTender(method string) {
	if m == nil || m.tenders == nil {
		return
	}
	m.tenders.WithLabelValues(method).Inc()
}

// IncSale counts a committed sale and observes its total.
func (m *SalesMetrics) IncSale(total float64) {
	if m == nil || m.sales == nil {
		return
	}
	m.sales.Inc()
	m.saleTotals.Observe(total)
}

// IncDiscarded counts a cancelled session.
func (m *SalesMetrics) IncDiscarded() {
	if m == nil || m.discarded == nil {
		return
	}
	m.discarded.Inc()
}
