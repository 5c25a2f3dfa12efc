package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_actions_total",
			Help: "Total number of like/pass actions applied",
		},
		[]string{"action"},
	)

	mutualMatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_mutual_matches_total",
			Help: "Total number of pairs that reached mutual status",
		},
	)

	recordsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_records_created_total",
			Help: "Total number of match records created",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func RecordAction(action string) {
	actionsTotal.WithLabelValues(action).Inc()
}

func RecordMutualMatch() {
	mutualMatchesTotal.Inc()
}

func RecordCreated() {
	recordsCreatedTotal.Inc()
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}
