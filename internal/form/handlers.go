package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

var _ ports.Prefiller = (*Engine)(nil)

// Attach registers the engine handlers on src and returns a func that removes them all.
// Submit events run the network call in the background; join it with Wait.
func (e *Engine) Attach(src ports.EventSource) ports.DetachFunc {
	var detach []ports.DetachFunc
	on := func(target, eventType string, h ports.Handler) {
		detach = append(detach, src.On(target, eventType, h))
	}

	ctx := context.Background()
	for _, f := range e.fields {
		id := f.ID
		on(id, ports.EventFocus, func(ports.Event) { e.handle(e.HandleFocus(ctx, id)) })
		on(id, ports.EventBlur, func(ports.Event) { e.handle(e.HandleBlur(ctx, id)) })
		if f.Kind == domain.KindSelect {
			on(id, ports.EventChange, func(ev ports.Event) { e.handle(e.HandleChange(ctx, id, ev.Index)) })
		} else {
			on(id, ports.EventInput, func(ev ports.Event) { e.handle(e.HandleInput(ctx, id, ev.Value)) })
		}
	}
	on(e.spec.ID, ports.EventSubmit, func(ports.Event) { e.handle(e.SubmitAsync(ctx)) })
	on(domain.ElementBanner, ports.EventClick, func(ports.Event) { e.DismissBanner() })

	return func() {
		for _, d := range detach {
			d()
		}
	}
}

func (e *Engine) handle(err error) {
	if err == nil || errors.Is(err, domain.ErrValidationFailed) {
		return
	}
	e.logger.Debug("form event rejected", "form", e.spec.ID, "err", err)
}

func (e *Engine) lookupLocked(id string) (*domain.FormField, error) {
	f, ok := e.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, id)
	}
	return f, nil
}

// HandleFocus marks the field focused, clears its error state and highlights
// the progress step of its group.
func (e *Engine) HandleFocus(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.lookupLocked(id)
	if err != nil {
		return err
	}
	e.focusLocked(f)
	return nil
}

func (e *Engine) focusLocked(f *domain.FormField) {
	e.view.MarkFocused(f.ID, true)
	f.Validity, f.Message = domain.Unvalidated, ""
	e.view.ClearFieldError(f.ID)
	if f.Group > 0 {
		e.view.HighlightProgress(f.Group)
	}
}

// HandleBlur unmarks focus, refreshes the has-value marking and validates the field.
func (e *Engine) HandleBlur(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.lookupLocked(id)
	if err != nil {
		return err
	}
	e.view.MarkFocused(f.ID, false)
	e.view.MarkHasValue(f.ID, f.HasValue())
	e.validateLocked(ctx, f)
	return nil
}

// HandleInput records a typed value. The field is re-validated only while it
// shows an error, so the message disappears as soon as the input becomes valid.
func (e *Engine) HandleInput(ctx context.Context, id, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.checkInputLocked(id, value)
	if err != nil {
		return err
	}
	e.inputLocked(ctx, f, value)
	return nil
}

func (e *Engine) checkInputLocked(id, value string) (*domain.FormField, error) {
	f, err := e.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	if f.Kind == domain.KindSelect && f.OptionIndex(value) < 0 {
		return nil, fmt.Errorf("%w: %q for %s", domain.ErrUnknownOption, value, id)
	}
	return f, nil
}

func (e *Engine) inputLocked(ctx context.Context, f *domain.FormField, value string) {
	if f.Kind == domain.KindSelect {
		f.SelectedIndex = f.OptionIndex(value)
	}
	f.Value = value
	e.view.SetFieldValue(f.ID, f.Value, f.SelectedIndex)
	e.view.MarkHasValue(f.ID, f.HasValue())
	if showsError(f) {
		e.validateLocked(ctx, f)
	}
}

// HandleChange selects the option at index of a select and validates it.
func (e *Engine) HandleChange(ctx context.Context, id string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.lookupLocked(id)
	if err != nil {
		return err
	}
	if f.Kind != domain.KindSelect {
		return fmt.Errorf("%w: %s is not a select", domain.ErrUnknownField, id)
	}
	if index < 0 || index >= len(f.Options) {
		return fmt.Errorf("%w: index %d for %s", domain.ErrUnknownOption, index, id)
	}
	f.SelectedIndex = index
	f.Value = f.OptionValue(index)
	e.view.SetFieldValue(f.ID, f.Value, f.SelectedIndex)
	e.view.MarkHasValue(f.ID, index > 0)
	e.validateLocked(ctx, f)
	return nil
}

// Prefill selects the option carrying value (or sets the text) on behalf of
// another component.
func (e *Engine) Prefill(fieldID, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.lookupLocked(fieldID)
	if err != nil {
		return err
	}
	if f.Kind == domain.KindSelect {
		idx := f.OptionIndex(value)
		if idx < 0 {
			return fmt.Errorf("%w: %q for %s", domain.ErrUnknownOption, value, fieldID)
		}
		f.SelectedIndex = idx
		f.Value = f.OptionValue(idx)
	} else {
		f.Value = value
	}
	e.view.SetFieldValue(f.ID, f.Value, f.SelectedIndex)
	e.view.MarkHasValue(f.ID, f.HasValue())
	if showsError(f) {
		e.validateLocked(context.Background(), f)
	}
	return nil
}

// Focus moves input focus to the field and runs the focus handler.
func (e *Engine) Focus(fieldID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.lookupLocked(fieldID)
	if err != nil {
		return err
	}
	e.view.FocusField(f.ID)
	e.focusLocked(f)
	return nil
}

// Load sets every field named in values as if the user had typed or chosen it,
// without validating. Nothing is applied unless every id and option is known;
// the error names the first offending id in sorted order.
func (e *Engine) Load(values map[string]string) error {
	ctx := context.Background()
	ids := slices.Sorted(maps.Keys(values))

	e.mu.Lock()
	defer e.mu.Unlock()
	fields := make([]*domain.FormField, len(ids))
	for i, id := range ids {
		f, err := e.checkInputLocked(id, values[id])
		if err != nil {
			return err
		}
		fields[i] = f
	}
	for i, f := range fields {
		e.inputLocked(ctx, f, values[ids[i]])
	}
	return nil
}
