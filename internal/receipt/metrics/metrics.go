package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the receipt module.
type Metrics struct {
	// Receipts accepted and stored
	Processed prometheus.Counter

	// Receipts rejected by validation
	Rejected prometheus.Counter

	// Distribution of awarded points
	PointsAwarded prometheus.Histogram

	// Points awarded per scoring rule
	RulePoints *prometheus.CounterVec

	// Deletions by result: "deleted" or "not_found"
	Deletions *prometheus.CounterVec

	// Receipts currently held in memory
	Stored prometheus.Gauge
}

// New registers the receipt metrics with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Processed: f.NewCounter(prometheus.CounterOpts{
			Name: "receipts_processed_total",
			Help: "Total receipts validated, scored and stored",
		}),
		Rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "receipts_rejected_total",
			Help: "Total receipts rejected by validation",
		}),
		PointsAwarded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "receipts_points_awarded",
			Help:    "Points awarded per processed receipt",
			Buckets: []float64{0, 10, 25, 50, 75, 100, 150, 250, 500},
		}),
		RulePoints: f.NewCounterVec(prometheus.CounterOpts{
			Name: "receipts_rule_points_total",
			Help: "Points awarded by each scoring rule",
		}, []string{"rule"}),
		Deletions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "receipts_deletions_total",
			Help: "Receipt deletions by result",
		}, []string{"result"}),
		Stored: f.NewGauge(prometheus.GaugeOpts{
			Name: "receipts_stored",
			Help: "Receipts currently held in memory",
		}),
	}
}

// ObserveProcessed records a stored receipt and its score.
func (m *Metrics) ObserveProcessed(points int) {
	if m != nil {
		m.Processed.Inc()
		m.PointsAwarded.Observe(float64(points))
	}
}

// AddRulePoints records the contribution of a single rule.
func (m *Metrics) AddRulePoints(rule string, points int) {
	if m != nil && points > 0 {
		m.RulePoints.WithLabelValues(rule).Add(float64(points))
	}
}

// IncrementRejected records a validation failure.
func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.Rejected.Inc()
	}
}

// IncrementDeletion records a delete attempt by its result.
func (m *Metrics) IncrementDeletion(found bool) {
	if m == nil {
		return
	}
	result := "not_found"
	if found {
		result = "deleted"
	}
	m.Deletions.WithLabelValues(result).Inc()
}

// SetStored sets the number of receipts held in memory.
func (m *Metrics) SetStored(n int) {
	if m != nil {
		m.Stored.Set(float64(n))
	}
}
