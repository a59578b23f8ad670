package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewMetrics(reg).Hooks()
	ctx := context.Background()

	hooks.OnFieldValidated(ctx, &domain.FieldEvent{FieldID: "email", Validity: domain.InvalidFormat})
	hooks.OnSubmissionChange(ctx, &domain.SubmissionEvent{From: domain.SubmissionIdle, To: domain.SubmissionSubmitting})
	hooks.OnSubmissionChange(ctx, &domain.SubmissionEvent{From: domain.SubmissionSubmitting, To: domain.SubmissionSucceeded, Duration: 150 * time.Millisecond})
	hooks.OnQuizStep(ctx, &domain.QuizEvent{Step: domain.Step1, Answers: domain.QuizAnswers{Goal: domain.GoalToning}})
	rec := domain.Recommend(domain.QuizAnswers{Goal: domain.GoalToning})
	hooks.OnQuizCompleted(ctx, &domain.QuizEvent{Step: domain.StepResults, Recommendation: &rec})
	hooks.OnQuizRestarted(ctx, &domain.QuizEvent{})
	hooks.OnQuizHandOff(ctx, &domain.QuizEvent{})

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}

	validations := byName["fitlanding_form_field_validations_total"]
	require.NotNil(t, validations)
	assert.Equal(t, 1.0, validations.GetMetric()[0].GetCounter().GetValue())

	duration := byName["fitlanding_form_submission_duration_seconds"]
	require.NotNil(t, duration)
	assert.Equal(t, uint64(1), duration.GetMetric()[0].GetHistogram().GetSampleCount())

	outcomes := byName["fitlanding_quiz_recommendations_total"]
	require.NotNil(t, outcomes)
	assert.Equal(t, domain.ProgramBodySculpting, outcomes.GetMetric()[0].GetLabel()[0].GetValue())

	n, err := testutil.GatherAndCount(reg, "fitlanding_form_submission_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *observability.Metrics
	hooks := m.Hooks()
	assert.Nil(t, hooks.OnQuizStep)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LogHooks(logger)
	ctx := context.Background()

	hooks.OnSubmissionChange(ctx, &domain.SubmissionEvent{
		From: domain.SubmissionSubmitting, To: domain.SubmissionFailed, Err: errors.New("status 500"),
	})
	hooks.OnFieldValidated(ctx, &domain.FieldEvent{FieldID: "name", Validity: domain.Valid})

	out := buf.String()
	assert.Contains(t, out, "submission_change")
	assert.Contains(t, out, "to=failed")
	assert.Contains(t, out, `err="status 500"`)
	assert.Contains(t, out, "field=name")
}
