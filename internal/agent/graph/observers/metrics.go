package observers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for chat pipeline runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec   // runs by mode, category and status
	StageDuration *prometheus.HistogramVec // completion latency per stage
	StageFailures *prometheus.CounterVec   // failed stages
	CostUSD       prometheus.Counter       // accumulated completion cost
}

// NewMetrics creates and registers the pipeline metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carecrew_pipeline_runs_total",
		Help: "Total number of pipeline runs",
	}, []string{"mode", "category", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carecrew_stage_duration_seconds",
		Help:    "Duration of a single pipeline stage",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"stage"})

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carecrew_stage_failures_total",
		Help: "Total number of failed pipeline stages",
	}, []string{"stage"})

	cost := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carecrew_completion_cost_usd_total",
		Help: "Accumulated completion cost in USD",
	})

	reg.MustRegister(runs, duration, failures, cost)

	return &Metrics{
		RunsTotal:     runs,
		StageDuration: duration,
		StageFailures: failures,
		CostUSD:       cost,
	}
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	if err != nil {
		m.StageFailures.WithLabelValues(stage).Inc()
	}
}

// ObserveRun records one finished pipeline run.
func (m *Metrics) ObserveRun(mode, category, status string, costUSD float64) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(mode, category, status).Inc()
	if costUSD > 0 {
		m.CostUSD.Add(costUSD)
	}
}
