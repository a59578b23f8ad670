package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFieldValidated   EventType = "field_validated"
	EventSubmissionChange EventType = "submission_change"
	EventQuizStep         EventType = "quiz_step"
	EventQuizCompleted    EventType = "quiz_completed"
	EventQuizRestarted    EventType = "quiz_restarted"
	EventQuizHandOff      EventType = "quiz_hand_off"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FieldEvent reports the outcome of one validateField run.
type FieldEvent struct {
	EventBase
	FieldID  string   `json:"field_id"`
	Validity Validity `json:"validity"`
}

// SubmissionEvent reports a submission state change.
type SubmissionEvent struct {
	EventBase
	From     SubmissionState `json:"from"`
	To       SubmissionState `json:"to"`
	Duration time.Duration   `json:"duration,omitempty"` // Set when leaving submitting
	Err      error           `json:"-"`
}

// QuizEvent reports a wizard transition.
type QuizEvent struct {
	EventBase
	Step           Step            `json:"step"`
	Answers        QuizAnswers     `json:"answers"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// LifecycleHooks defines callbacks for observability. Nil callbacks are skipped.
type LifecycleHooks struct {
	OnFieldValidated   func(context.Context, *FieldEvent)
	OnSubmissionChange func(context.Context, *SubmissionEvent)
	OnQuizStep         func(context.Context, *QuizEvent)
	OnQuizCompleted    func(context.Context, *QuizEvent)
	OnQuizRestarted    func(context.Context, *QuizEvent)
	OnQuizHandOff      func(context.Context, *QuizEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnFieldValidated:   chain(h.OnFieldValidated, other.OnFieldValidated),
		OnSubmissionChange: chain(h.OnSubmissionChange, other.OnSubmissionChange),
		OnQuizStep:         chain(h.OnQuizStep, other.OnQuizStep),
		OnQuizCompleted:    chain(h.OnQuizCompleted, other.OnQuizCompleted),
		OnQuizRestarted:    chain(h.OnQuizRestarted, other.OnQuizRestarted),
		OnQuizHandOff:      chain(h.OnQuizHandOff, other.OnQuizHandOff),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
