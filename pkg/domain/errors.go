package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrPreferenceNotFound is returned when a persisted preference flag is absent.
var ErrPreferenceNotFound = errors.New("preference not found")

var (
	// ErrIllegalTransition is returned when a state machine is asked to take an edge it does not have.
	ErrIllegalTransition = errors.New("illegal state transition")

	// ErrSubmissionInFlight is returned when a submit is attempted while another is outstanding.
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrFormClosed is returned when the form already succeeded for this page view.
	ErrFormClosed = errors.New("form already submitted")

	// ErrValidationFailed is returned by Submit when at least one field is invalid.
	ErrValidationFailed = errors.New("form validation failed")

	// ErrSubmissionFailed wraps every network-side failure of a submission.
	ErrSubmissionFailed = errors.New("submission failed")
)

var (
	// ErrUnknownField is returned when a field identifier is not part of the form.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownOption is returned when a value is not one of the allowed options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrStepMismatch is returned when an answer targets a step that is not current.
	ErrStepMismatch = errors.New("answer does not belong to the current step")

	// ErrQuizIncomplete is returned when results are requested before the last step is answered.
	ErrQuizIncomplete = errors.New("quiz is not complete")

	// ErrAlreadyHandedOff is returned when a completed quiz is accepted a second time.
	ErrAlreadyHandedOff = errors.New("quiz already handed off")
)
