package page

import (
	"strconv"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

var _ ports.FormView = (*Page)(nil)

// ShowFieldError marks the field group errored and replaces its annotation with message.
func (p *Page) ShowFieldError(fieldID, message string) {
	p.mutate(GroupID(fieldID), func(el *Element) {
		el.toggleClass(ClassFieldError, true)
		el.Annotations = []string{message}
	})
}

// ClearFieldError removes the error class and annotation from the field group.
func (p *Page) ClearFieldError(fieldID string) {
	p.mutate(GroupID(fieldID), func(el *Element) {
		el.toggleClass(ClassFieldError, false)
		el.Annotations = nil
	})
}

// MarkFocused toggles the focused class on the field group.
func (p *Page) MarkFocused(fieldID string, focused bool) {
	p.mutate(GroupID(fieldID), func(el *Element) {
		el.toggleClass(ClassFieldFocused, focused)
	})
}

// MarkHasValue toggles the has-value class on both the group and the input.
func (p *Page) MarkHasValue(fieldID string, hasValue bool) {
	p.mutate(GroupID(fieldID), func(el *Element) {
		el.toggleClass(ClassFieldHasValue, hasValue)
	})
	p.mutate(fieldID, func(el *Element) {
		el.toggleClass(ClassFieldHasValue, hasValue)
	})
}

// SetFieldValue writes the input value and, for selects, the chosen index.
func (p *Page) SetFieldValue(fieldID, value string, selectedIndex int) {
	p.mutate(fieldID, func(el *Element) {
		el.Value = value
		el.SelectedIndex = selectedIndex
	})
}

// FocusField moves page focus to the input. Unknown ids are ignored.
func (p *Page) FocusField(fieldID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.elements[fieldID]; ok {
		p.focused = fieldID
	}
}

// HighlightProgress activates the progress step of group and deactivates the others.
func (p *Page) HighlightProgress(group int) {
	for g := 1; g <= 3; g++ {
		active := g == group
		p.mutate(ProgressStepID(g), func(el *Element) {
			el.toggleClass(ClassActive, active)
		})
	}
}

// SetSubmitBusy disables the submit button while busy and swaps its label.
func (p *Page) SetSubmitBusy(busy bool, label string) {
	p.mutate(domain.ElementSubmit, func(el *Element) {
		el.Disabled = busy
		el.Text = label
		el.setData("busy", strconv.FormatBool(busy))
	})
	p.mutate(p.formID, func(el *Element) {
		el.toggleClass(ClassFormSubmitting, busy)
	})
}

// ShowBanner attaches message as the single form-level error.
func (p *Page) ShowBanner(message string) {
	p.mutate(p.formID, func(el *Element) {
		el.Annotations = []string{message}
	})
}

// DismissBanner removes the form-level error.
func (p *Page) DismissBanner() {
	p.mutate(p.formID, func(el *Element) {
		el.Annotations = nil
	})
}

// HideForm hides the contact form after a successful submission.
func (p *Page) HideForm() {
	p.mutate(p.formID, func(el *Element) {
		el.Hidden = true
	})
}

// ShowSuccess reveals the confirmation block and scrolls to it.
func (p *Page) ShowSuccess() {
	p.mutate(domain.ElementFormSuccess, func(el *Element) {
		el.Hidden = false
		el.toggleClass(ClassShow, true)
		el.setData("animation", "fadeIn")
	})
	p.scrollTo(domain.ElementFormSuccess)
}

// ScrollToField records a scroll to the field group.
func (p *Page) ScrollToField(fieldID string) {
	p.scrollTo(GroupID(fieldID))
}

func (p *Page) scrollTo(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.elements[id]; ok {
		p.scrolls = append(p.scrolls, id)
	}
}
