// Package monitor records clustering runs as prometheus metrics.
package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/objones25/kmeans/internal/kmeans"
)

// Metrics holds the clustering collectors. It implements kmeans.Observer.
type Metrics struct {
	// Run metrics
	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Iteration metrics
	Iterations        prometheus.Counter
	AssignmentChanges prometheus.Counter
	LastChanges       prometheus.Gauge

	// Empty clusters seen across all iterations
	EmptyClusters prometheus.Counter
}

var _ kmeans.Observer = (*Metrics)(nil)

// NewMetrics registers the clustering collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kmeans_runs_total",
			Help: "Total number of completed clustering runs",
		}, []string{"converged"}),

		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmeans_run_duration_seconds",
			Help:    "Duration of clustering runs",
			Buckets: []float64{.0001, .001, .01, .05, .1, .5, 1, 5, 30},
		}),

		Iterations: factory.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_iterations_total",
			Help: "Total number of Lloyd iterations executed",
		}),

		AssignmentChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_assignment_changes_total",
			Help: "Total number of vectors that changed cluster",
		}),

		LastChanges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kmeans_last_iteration_changes",
			Help: "Vectors that changed cluster in the most recent iteration",
		}),

		EmptyClusters: factory.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_empty_clusters_total",
			Help: "Total number of empty clusters encountered",
		}),
	}
}

// IterationCompleted implements kmeans.Observer
func (m *Metrics) IterationCompleted(iteration, changes int) {
	m.Iterations.Inc()
	m.AssignmentChanges.Add(float64(changes))
	m.LastChanges.Set(float64(changes))
}

// EmptyCluster implements kmeans.Observer
func (m *Metrics) EmptyCluster(iteration, cluster int) {
	m.EmptyClusters.Inc()
}

// RunCompleted implements kmeans.Observer
func (m *Metrics) RunCompleted(iterations int, converged bool, elapsed time.Duration) {
	label := "false"
	if converged {
		label = "true"
	}
	m.Runs.WithLabelValues(label).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}

// LogSummary writes one debug line per gathered sample. Gather errors are
// logged and otherwise ignored.
func LogSummary(logger zerolog.Logger, gatherer prometheus.Gatherer) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	families, err := gatherer.Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to gather metrics")
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := logger.Debug().Str("metric", family.GetName())
			for _, pair := range metric.GetLabel() {
				event = event.Str(pair.GetName(), pair.GetValue())
			}
			event.Float64("value", sampleValue(family.GetType(), metric)).Msg("Metric")
		}
	}
}

func sampleValue(kind dto.MetricType, metric *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return metric.GetHistogram().GetSampleSum()
	default:
		return metric.GetUntyped().GetValue()
	}
}
