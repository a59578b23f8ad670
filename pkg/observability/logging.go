package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// LogHooks writes one structured line per lifecycle event.
// Field values are never logged, only identifiers and outcomes.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFieldValidated: func(ctx context.Context, e *domain.FieldEvent) {
			logger.DebugContext(ctx, "field_validated", "field", e.FieldID, "validity", e.Validity)
		},
		OnSubmissionChange: func(ctx context.Context, e *domain.SubmissionEvent) {
			attrs := []any{"from", e.From, "to", e.To}
			if e.Duration > 0 {
				attrs = append(attrs, "duration", e.Duration)
			}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.InfoContext(ctx, "submission_change", attrs...)
		},
		OnQuizStep: func(ctx context.Context, e *domain.QuizEvent) {
			logger.DebugContext(ctx, "quiz_step", "step", e.Step, "answer", e.Answers.Get(e.Step))
		},
		OnQuizCompleted: func(ctx context.Context, e *domain.QuizEvent) {
			program := ""
			if e.Recommendation != nil {
				program = e.Recommendation.Program
			}
			logger.InfoContext(ctx, "quiz_completed", "program", program)
		},
		OnQuizRestarted: func(ctx context.Context, e *domain.QuizEvent) {
			logger.InfoContext(ctx, "quiz_restarted")
		},
		OnQuizHandOff: func(ctx context.Context, e *domain.QuizEvent) {
			logger.InfoContext(ctx, "quiz_hand_off", "goal", e.Answers.Goal, "activity", e.Answers.Activity)
		},
	}
}
