package observability

import (
	"context"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters/histograms for the form and quiz flows.
type Metrics struct {
	fieldValidations   *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	quizSteps          *prometheus.CounterVec
	quizOutcomes       *prometheus.CounterVec
	quizRestarts       prometheus.Counter
	quizHandOffs       prometheus.Counter
}

// NewMetrics registers the collectors on reg (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fieldValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "form",
			Name:      "field_validations_total",
			Help:      "Field validations by field and outcome",
		}, []string{"field", "validity"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "form",
			Name:      "submission_transitions_total",
			Help:      "Submission state transitions by target state",
		}, []string{"state"}),
		submissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fitlanding",
			Subsystem: "form",
			Name:      "submission_duration_seconds",
			Help:      "Latency of the form endpoint",
			Buckets:   prometheus.DefBuckets,
		}),
		quizSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "quiz",
			Name:      "answers_total",
			Help:      "Quiz answers by step and value",
		}, []string{"step", "value"}),
		quizOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "quiz",
			Name:      "recommendations_total",
			Help:      "Completed quizzes by recommended program",
		}, []string{"program"}),
		quizRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "quiz",
			Name:      "restarts_total",
			Help:      "Quiz restarts",
		}),
		quizHandOffs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitlanding",
			Subsystem: "quiz",
			Name:      "handoffs_total",
			Help:      "Accepted recommendations handed to the contact form",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fieldValidations, m.submissions, m.submissionDuration,
		m.quizSteps, m.quizOutcomes, m.quizRestarts, m.quizHandOffs)
	return m
}

// Hooks returns lifecycle hooks that record into m. A nil Metrics yields no hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	if m == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnFieldValidated: func(_ context.Context, e *domain.FieldEvent) {
			m.fieldValidations.WithLabelValues(e.FieldID, string(e.Validity)).Inc()
		},
		OnSubmissionChange: func(_ context.Context, e *domain.SubmissionEvent) {
			m.submissions.WithLabelValues(string(e.To)).Inc()
			if e.From == domain.SubmissionSubmitting {
				m.submissionDuration.Observe(e.Duration.Seconds())
			}
		},
		OnQuizStep: func(_ context.Context, e *domain.QuizEvent) {
			m.quizSteps.WithLabelValues(e.Step.String(), e.Answers.Get(e.Step)).Inc()
		},
		OnQuizCompleted: func(_ context.Context, e *domain.QuizEvent) {
			if e.Recommendation != nil {
				m.quizOutcomes.WithLabelValues(e.Recommendation.Program).Inc()
			}
		},
		OnQuizRestarted: func(context.Context, *domain.QuizEvent) {
			m.quizRestarts.Inc()
		},
		OnQuizHandOff: func(context.Context, *domain.QuizEvent) {
			m.quizHandOffs.Inc()
		},
	}
}
