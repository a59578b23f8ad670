package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

var errNoSubmitter = errors.New("no submitter configured")

// Submit validates the form and, when every field is valid, delivers it to
// the submitter. It blocks until the endpoint answers.
//
// Returns domain.ErrValidationFailed when a field is invalid,
// domain.ErrSubmissionInFlight while another submission is pending,
// domain.ErrFormClosed after a successful submission and
// domain.ErrSubmissionFailed (wrapping the cause) when delivery failed.
func (e *Engine) Submit(ctx context.Context) error {
	send, err := e.begin(ctx)
	if err != nil {
		return err
	}
	return send()
}

// SubmitAsync performs the synchronous part of Submit and runs the network
// call in the background. Use Wait to join it.
func (e *Engine) SubmitAsync(ctx context.Context) error {
	send, err := e.begin(ctx)
	if err != nil {
		return err
	}
	go func() {
		_ = send()
	}()
	return nil
}

// Wait blocks until every submission started so far has settled.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

// begin clears stale annotations, validates, and moves idle -> submitting.
// The returned func issues the network call and settles the outcome.
func (e *Engine) begin(ctx context.Context) (func() error, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case domain.SubmissionSucceeded:
		return nil, domain.ErrFormClosed
	case domain.SubmissionSubmitting:
		return nil, domain.ErrSubmissionInFlight
	}

	e.view.DismissBanner()
	for _, f := range e.fields {
		f.Validity, f.Message = domain.Unvalidated, ""
		e.view.ClearFieldError(f.ID)
	}

	if !e.validateAllLocked(ctx) {
		if first := e.firstInvalidLocked(); first != nil {
			e.view.ScrollToField(first.ID)
		}
		e.logger.Debug("submission blocked by validation", "form", e.spec.ID)
		return nil, domain.ErrValidationFailed
	}

	if err := e.transitionLocked(ctx, domain.SubmissionSubmitting, 0, nil); err != nil {
		return nil, err
	}
	e.view.SetSubmitBusy(true, SubmittingLabel)

	sub := ports.Submission{
		Action: e.spec.Action,
		Method: e.spec.Method,
		Values: e.valuesLocked(),
	}
	started := time.Now()
	e.inflight.Add(1)

	return func() error {
		defer e.inflight.Done()

		var err error
		if e.submitter == nil {
			err = errNoSubmitter
		} else {
			err = e.submitter.Submit(ctx, sub)
		}
		return e.settle(ctx, started, err)
	}, nil
}

func (e *Engine) settle(ctx context.Context, started time.Time, cause error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	elapsed := time.Since(started)
	if cause != nil {
		e.lastErr = cause
		e.logger.Error("form submission failed", "form", e.spec.ID, "action", e.spec.Action, "err", cause)

		if err := e.transitionLocked(ctx, domain.SubmissionFailed, elapsed, cause); err != nil {
			return err
		}
		e.view.SetSubmitBusy(false, e.spec.SubmitLabel)
		e.view.ShowBanner(domain.SubmissionBannerText)
		if err := e.transitionLocked(ctx, domain.SubmissionIdle, 0, nil); err != nil {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, cause)
	}

	if err := e.transitionLocked(ctx, domain.SubmissionSucceeded, elapsed, nil); err != nil {
		return err
	}
	e.logger.Info("form submitted", "form", e.spec.ID, "duration", elapsed)
	e.view.HideForm()
	e.view.ShowSuccess()
	e.resetLocked()
	return nil
}

// transitionLocked is the single place the submission state changes.
func (e *Engine) transitionLocked(ctx context.Context, to domain.SubmissionState, elapsed time.Duration, cause error) error {
	from := e.state
	next, err := from.Transition(to)
	if err != nil {
		e.logger.Error("illegal submission transition", "from", from, "to", to)
		return err
	}
	e.state = next

	if e.hooks.OnSubmissionChange != nil {
		e.hooks.OnSubmissionChange(ctx, &domain.SubmissionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmissionChange},
			From:      from,
			To:        next,
			Duration:  elapsed,
			Err:       cause,
		})
	}
	return nil
}

func (e *Engine) resetLocked() {
	for _, f := range e.fields {
		f.SelectedIndex = 0
		f.Value = ""
		if f.Kind == domain.KindSelect {
			f.Value = f.OptionValue(0)
		}
		f.Validity, f.Message = domain.Unvalidated, ""
		e.view.SetFieldValue(f.ID, f.Value, f.SelectedIndex)
		e.view.MarkHasValue(f.ID, false)
	}
}

// DismissBanner removes the submission error banner.
func (e *Engine) DismissBanner() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.DismissBanner()
}
