package domain

import "fmt"

// SubmissionState is the lifecycle of one form submission.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSucceeded  SubmissionState = "succeeded" // Terminal for the page view
	SubmissionFailed     SubmissionState = "failed"   // Transient, falls back to idle
)

// submissionEdges is the only source of truth for legal submission transitions.
var submissionEdges = map[SubmissionState][]SubmissionState{
	SubmissionIdle:       {SubmissionSubmitting},
	SubmissionSubmitting: {SubmissionSucceeded, SubmissionFailed},
	SubmissionFailed:     {SubmissionIdle},
}

// CanTransition reports whether the edge from -> to exists.
func (from SubmissionState) CanTransition(to SubmissionState) bool {
	for _, next := range submissionEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns to if the edge exists, or ErrIllegalTransition.
func (from SubmissionState) Transition(to SubmissionState) (SubmissionState, error) {
	if !from.CanTransition(to) {
		return from, fmt.Errorf("%w: submission %s -> %s", ErrIllegalTransition, from, to)
	}
	return to, nil
}

// FormSpec is the static description of the contact form, as found on the page.
type FormSpec struct {
	ID          string      `json:"id" yaml:"id" validate:"required"`
	Action      string      `json:"action" yaml:"action" validate:"required,url"`
	Method      string      `json:"method" yaml:"method" validate:"required,oneof=POST GET post get"`
	SubmitLabel string      `json:"submit_label" yaml:"submit_label"`
	Fields      []FieldSpec `json:"fields" yaml:"fields" validate:"required,min=1,dive"`
}

// Field returns the spec of the field with the given id.
func (s FormSpec) Field(id string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Well-known element identifiers of the landing page.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldGoals      = "goals"
	FieldExperience = "experience"
	FieldService    = "service"
	FieldMessage    = "message"

	ElementForm           = "interest-form"
	ElementFormSuccess    = "form-success"
	ElementContact        = "contact"
	ElementQuizDialog     = "fitness-quiz"
	ElementSubmit         = "interest-form-submit"
	ElementBanner         = "form-submission-error"
	ElementFormProgress   = "form-progress"
	ElementQuizProgress   = "quiz-progress"
	ElementQuizResults    = "quiz-results"
	ElementQuizStepPrefix = "quiz-step-"
	ElementQuizOpen       = "fitnessQuizBtn"
	ElementQuizClose      = "quiz-close"
	ElementQuizRestart    = "quiz-restart"
	ElementQuizAccept     = "quiz-accept"
)

// SubmissionBannerText is the only message ever shown for a failed submission.
const SubmissionBannerText = "Sorry, there was a problem submitting your form. Please try again."

// DefaultSubmitLabel is the submit control label restored after a failure.
const DefaultSubmitLabel = "Submit"

// ContactRequest is the typed view of a submitted contact form.
type ContactRequest struct {
	Name       string `json:"name" mapstructure:"name"`
	Email      string `json:"email" mapstructure:"email"`
	Phone      string `json:"phone,omitempty" mapstructure:"phone"`
	Goals      string `json:"goals,omitempty" mapstructure:"goals"`
	Experience string `json:"experience,omitempty" mapstructure:"experience"`
	Service    string `json:"service,omitempty" mapstructure:"service"`
	Message    string `json:"message,omitempty" mapstructure:"message"`
}

// Values flattens the request into field id -> value pairs.
func (c ContactRequest) Values() map[string]string {
	return map[string]string{
		FieldName:       c.Name,
		FieldEmail:      c.Email,
		FieldPhone:      c.Phone,
		FieldGoals:      c.Goals,
		FieldExperience: c.Experience,
		FieldService:    c.Service,
		FieldMessage:    c.Message,
	}
}
