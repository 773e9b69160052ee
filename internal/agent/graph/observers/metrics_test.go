package observers

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveStage("research", 120*time.Millisecond, nil)
	m.ObserveStage("review", time.Second, errors.New("boom"))
	m.ObserveRun("fast", "faq", "success", 0.002)
	m.ObserveRun("fast", "faq", "success", 0)
	m.ObserveRun("full", "order", "error", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("fast", "faq", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("full", "order", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailures.WithLabelValues("review")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StageFailures.WithLabelValues("research")))
	assert.InDelta(t, 0.002, testutil.ToFloat64(m.CostUSD), 1e-12)
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveStage("review", time.Second, nil)
		m.ObserveRun("fast", "faq", "success", 1)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
}
