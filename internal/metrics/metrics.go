// Package metrics exposes Prometheus instrumentation for evaluations and
// the workspace.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

const namespace = "verdict"

// Outcome label values for verdict_evaluations_total.
const (
	OutcomeOK             = "ok"
	OutcomeNoCriteria     = "no_criteria"
	OutcomeNoAlternatives = "no_alternatives"
	OutcomeMissingValue   = "missing_value"
	OutcomeError          = "error"
)

// Metrics holds every collector registered by the service.
type Metrics struct {
	evaluations  *prometheus.CounterVec
	diagnostics  *prometheus.CounterVec
	duration     prometheus.Histogram
	criteria     prometheus.Gauge
	alternatives prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		evaluations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "SAW evaluations by outcome.",
		}, []string{"source", "outcome"}),
		diagnostics: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Advisory diagnostics raised by successful evaluations.",
		}, []string{"kind"}),
		duration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent in a single SAW computation.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		criteria: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "workspace",
			Name:      "criteria",
			Help:      "Criteria currently in the workspace.",
		}),
		alternatives: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "workspace",
			Name:      "alternatives",
			Help:      "Alternatives currently in the workspace.",
		}),
	}
}

// ObserveEvaluation records one Compute call. A nil *Metrics is a no-op.
func (m *Metrics) ObserveEvaluation(source string, elapsed time.Duration, ev *saw.Evaluation, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.evaluations.WithLabelValues(source, outcome(err)).Inc()
	if ev == nil {
		return
	}
	for _, d := range ev.Diagnostics {
		m.diagnostics.WithLabelValues(string(d.Kind)).Inc()
	}
}

// SetWorkspaceSize updates the workspace gauges.
func (m *Metrics) SetWorkspaceSize(criteria, alternatives int) {
	if m == nil {
		return
	}
	m.criteria.Set(float64(criteria))
	m.alternatives.Set(float64(alternatives))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, saw.ErrNoCriteria):
		return OutcomeNoCriteria
	case errors.Is(err, saw.ErrNoAlternatives):
		return OutcomeNoAlternatives
	case errors.Is(err, saw.ErrMissingValue):
		return OutcomeMissingValue
	default:
		return OutcomeError
	}
}
