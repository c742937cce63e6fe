package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the questionnaire subsystem. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	RemoteRequestDuration *prometheus.HistogramVec
	RemoteFailures        *prometheus.CounterVec
	QuestionCacheResults  *prometheus.CounterVec
	ValidationOutcomes    *prometheus.CounterVec
	ValidationsCoalesced  prometheus.Counter
	FlagClears            prometheus.Counter
	FlagClearFailures     prometheus.Counter
	FlagReadFailures      prometheus.Counter
	FinishTotal           *prometheus.CounterVec
	AnswerSubmitFailures  prometheus.Counter
}

func New() *Metrics {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry registers on a private registry; tests use it to avoid
// duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	return newWith(promauto.With(reg))
}

func newWith(f promauto.Factory) *Metrics {
	return &Metrics{
		RemoteRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "anamnesis_remote_request_duration_seconds",
			Help:    "Latency of calls to the questionnaire backend",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "anamnesis_remote_failures_total",
			Help: "Failed calls to the questionnaire backend by failure kind",
		}, []string{"operation", "kind"}),
		QuestionCacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "anamnesis_question_cache_total",
			Help: "Question cache lookups by result",
		}, []string{"result"}),
		ValidationOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "anamnesis_validation_outcomes_total",
			Help: "Completion validation runs by resulting state",
		}, []string{"state"}),
		ValidationsCoalesced: f.NewCounter(prometheus.CounterOpts{
			Name: "anamnesis_validations_coalesced_total",
			Help: "Validation triggers that joined an in-flight run",
		}),
		FlagClears: f.NewCounter(prometheus.CounterOpts{
			Name: "anamnesis_completion_flag_clears_total",
			Help: "Stale completion flags cleared by the validator",
		}),
		FlagClearFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "anamnesis_completion_flag_clear_failures_total",
			Help: "Failed attempts to clear a stale completion flag",
		}),
		FlagReadFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "anamnesis_completion_flag_read_failures_total",
			Help: "Completion flag reads that failed and were treated as absent",
		}),
		FinishTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "anamnesis_finish_total",
			Help: "Finish attempts by result",
		}, []string{"result"}),
		AnswerSubmitFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "anamnesis_answer_submit_failures_total",
			Help: "Answer submissions the backend rejected or never received",
		}),
	}
}

func (m *Metrics) ObserveRemoteRequest(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) IncrementRemoteFailure(operation, kind string) {
	if m == nil {
		return
	}
	m.RemoteFailures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.QuestionCacheResults.WithLabelValues("hit").Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.QuestionCacheResults.WithLabelValues("miss").Inc()
}

func (m *Metrics) IncrementValidationOutcome(state string) {
	if m == nil {
		return
	}
	m.ValidationOutcomes.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementCoalesced() {
	if m == nil {
		return
	}
	m.ValidationsCoalesced.Inc()
}

func (m *Metrics) IncrementFlagClears() {
	if m == nil {
		return
	}
	m.FlagClears.Inc()
}

func (m *Metrics) IncrementFlagClearFailures() {
	if m == nil {
		return
	}
	m.FlagClearFailures.Inc()
}

func (m *Metrics) IncrementFlagReadFailures() {
	if m == nil {
		return
	}
	m.FlagReadFailures.Inc()
}

func (m *Metrics) IncrementFinish(result string) {
	if m == nil {
		return
	}
	m.FinishTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementSubmitFailures() {
	if m == nil {
		return
	}
	m.AnswerSubmitFailures.Inc()
}
