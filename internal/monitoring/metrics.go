// Package monitoring exposes Prometheus metrics and run-history snapshots
// for the serve mode.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the analysis service.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: source={demo,image,remote}, status={ok,error}
	AnalysisDuration prometheus.Histogram
	PointsSelected   prometheus.Histogram
	ExportsTotal     *prometheus.CounterVec // labels: format={csv,geojson,kml,xlsx,shp}
	RemoteFallbacks  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantation",
			Name:      "analyses_total",
			Help:      "Analysis runs by estimator source and outcome.",
		}, []string{"source", "status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plantation",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete analysis pipeline run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PointsSelected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plantation",
			Name:      "points_selected",
			Help:      "Number of plantation points selected per analysis.",
			Buckets:   []float64{0, 10, 25, 50, 75, 100, 150, 200},
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantation",
			Name:      "exports_total",
			Help:      "Export files written by format.",
		}, []string{"format"}),
		RemoteFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plantation",
			Name:      "remote_fallbacks_total",
			Help:      "Remote analyses that degraded to local estimation.",
		}),
	}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.PointsSelected,
		m.ExportsTotal,
		m.RemoteFallbacks,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
