package ports

import "github.com/aretw0/fitlanding/pkg/domain"

// FormView is the element set owned by the Form Engine.
// Every method is a pure presentation side effect; none of them may fail.
type FormView interface {
	// ShowFieldError attaches the single error annotation next to the field
	// and marks its container as errored. Calling it twice replaces the message.
	ShowFieldError(fieldID, message string)
	// ClearFieldError removes the annotation and the errored marking.
	ClearFieldError(fieldID string)
	// MarkFocused toggles the focused marking of the field's container.
	MarkFocused(fieldID string, focused bool)
	// MarkHasValue toggles the "has value" marking that keeps labels raised.
	MarkHasValue(fieldID string, hasValue bool)
	// SetFieldValue mirrors the engine's value into the control.
	SetFieldValue(fieldID, value string, selectedIndex int)
	// FocusField moves input focus to the control.
	FocusField(fieldID string)
	// HighlightProgress marks the active form progress group.
	HighlightProgress(group int)

	// SetSubmitBusy disables the submit control and shows the busy indicator,
	// or restores the control to label and enabled state.
	SetSubmitBusy(busy bool, label string)
	// ShowBanner inserts the dismissable top-of-form error banner, replacing any existing one.
	ShowBanner(message string)
	// DismissBanner removes the banner if present.
	DismissBanner()
	// HideForm hides the form element.
	HideForm()
	// ShowSuccess reveals, animates and scrolls to the success panel.
	ShowSuccess()
	// ScrollToField scrolls the field into view, centered.
	ScrollToField(fieldID string)
}

// QuizView is the element set owned by the Quiz Wizard.
type QuizView interface {
	OpenDialog()
	CloseDialog()
	ShowStep(step domain.Step)
	HideStep(step domain.Step)
	// MarkOption toggles the selected marking of one option of a step.
	MarkOption(step domain.Step, value string, selected bool)
	// SetProgress moves the step indicator.
	SetProgress(step domain.Step)
	ShowResults(rec domain.Recommendation)
	HideResults()
	// ScrollToContact smooth-scrolls to the contact section.
	ScrollToContact()
}

// Prefiller is the write-only face of the Form Engine offered to the quiz hand-off.
type Prefiller interface {
	Prefill(fieldID, value string) error
	Focus(fieldID string) error
}
