package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/modcalc/internal/modular"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modcalc_evaluations_total",
			Help: "The total number of operations evaluated",
		},
		[]string{"operation", "method", "status"},
	)
	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "modcalc_evaluation_duration_seconds",
			Help:    "The duration of operation evaluations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 9),
		},
		[]string{"operation", "method"},
	)
	evaluationsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "modcalc_evaluations_running",
			Help: "Computations still running, including those whose caller gave up",
		},
	)
	_ = promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "modcalc_montgomery_cache_hits_total",
			Help: "Montgomery context lookups served from the cache",
		},
		func() float64 { return float64(modular.DefaultCache().Stats().Hits) },
	)
	_ = promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "modcalc_montgomery_cache_misses_total",
			Help: "Montgomery context lookups that built a new context",
		},
		func() float64 { return float64(modular.DefaultCache().Stats().Misses) },
	)
	_ = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "modcalc_montgomery_cache_entries",
			Help: "Montgomery contexts currently cached",
		},
		func() float64 { return float64(modular.DefaultCache().Stats().Len) },
	)
)

// statusOf maps an evaluation error to the metrics status label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case isCanceled(err):
		return "canceled"
	default:
		return "error"
	}
}
