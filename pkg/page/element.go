package page

import (
	"slices"
	"sort"
)

// Class names carried over from the site stylesheet.
const (
	ClassFieldError     = "field-error"
	ClassFieldFocused   = "field-focused"
	ClassFieldHasValue  = "field-has-value"
	ClassFormSubmitting = "form-submitting"
	ClassShow           = "show"
	ClassActive         = "active"
	ClassSelected       = "selected"
	ClassCompleted      = "completed"
)

// Element is one node of the headless page.
type Element struct {
	ID            string            `json:"id"`
	Classes       []string          `json:"classes,omitempty"`
	Text          string            `json:"text,omitempty"`
	Value         string            `json:"value,omitempty"`
	SelectedIndex int               `json:"selected_index,omitempty"`
	Hidden        bool              `json:"hidden,omitempty"`
	Disabled      bool              `json:"disabled,omitempty"`
	Data          map[string]string `json:"data,omitempty"`

	// Annotations are the error messages attached next to a field.
	Annotations []string `json:"annotations,omitempty"`
}

// HasClass reports whether the element carries class.
func (e Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

func (e *Element) toggleClass(class string, on bool) {
	has := e.HasClass(class)
	switch {
	case on && !has:
		e.Classes = append(e.Classes, class)
		sort.Strings(e.Classes)
	case !on && has:
		e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == class })
	}
}

func (e *Element) setData(key, value string) {
	if e.Data == nil {
		e.Data = make(map[string]string)
	}
	e.Data[key] = value
}

func (e *Element) clone() *Element {
	out := *e
	out.Classes = slices.Clone(e.Classes)
	out.Annotations = slices.Clone(e.Annotations)
	if e.Data != nil {
		out.Data = make(map[string]string, len(e.Data))
		for k, v := range e.Data {
			out.Data[k] = v
		}
	}
	return &out
}
