package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRemoteRequest("get_questions", time.Millisecond)
		m.IncrementFlagClears()
		m.IncrementValidationOutcome("completed")
	})
}

func TestCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementFlagClears()
	m.IncrementFlagClears()
	m.IncrementValidationOutcome("incomplete")
	m.IncrementRemoteFailure("get_answers", "network")
	m.IncrementCacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FlagClears))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationOutcomes.WithLabelValues("incomplete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteFailures.WithLabelValues("get_answers", "network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionCacheResults.WithLabelValues("hit")))
}
