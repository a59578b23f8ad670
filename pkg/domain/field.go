package domain

// FieldKind is the semantic kind of a form control.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindSelect   FieldKind = "select-one"
)

// Validity is the outcome of the last validation of a field.
type Validity string

const (
	Unvalidated   Validity = ""
	Valid         Validity = "valid"
	InvalidEmpty  Validity = "invalid-empty"
	InvalidFormat Validity = "invalid-format"
	InvalidLength Validity = "invalid-length"
)

// Option is one entry of a select control. Index 0 is the placeholder.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldSpec is the static markup of a field, as declared by the page.
type FieldSpec struct {
	ID       string    `json:"id" yaml:"id" validate:"required"`
	Kind     FieldKind `json:"kind" yaml:"kind" validate:"required,oneof=text textarea email tel select-one"`
	Label    string    `json:"label" yaml:"label" validate:"required"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Options  []Option  `json:"options,omitempty" yaml:"options,omitempty"`

	// Group is the progress step the field belongs to (1 Personal, 2 Fitness, 3 Service).
	Group int    `json:"group,omitempty" yaml:"group,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// FormField is a field under validation.
type FormField struct {
	FieldSpec
	SelectedIndex int      `json:"selected_index"`
	Validity      Validity `json:"validity"`
	Message       string   `json:"message,omitempty"`
}

// NewFormField instantiates a field from its markup.
// For selects, the initial value picks the matching option; otherwise the placeholder.
func NewFormField(spec FieldSpec) *FormField {
	f := &FormField{FieldSpec: spec}
	if spec.Kind == KindSelect {
		f.SelectedIndex = 0
		for i, opt := range spec.Options {
			if i > 0 && spec.Value != "" && opt.Value == spec.Value {
				f.SelectedIndex = i
				break
			}
		}
		f.Value = f.OptionValue(f.SelectedIndex)
	}
	return f
}

// OptionValue returns the value of the option at index, or "" when out of range.
func (f *FormField) OptionValue(index int) string {
	if index < 0 || index >= len(f.Options) {
		return ""
	}
	return f.Options[index].Value
}

// OptionIndex returns the index of the option carrying value, or -1.
func (f *FormField) OptionIndex(value string) int {
	for i, opt := range f.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// HasValue reports whether the field should render its label in the "filled" position.
func (f *FormField) HasValue() bool {
	if f.Kind == KindSelect {
		return f.SelectedIndex > 0
	}
	return f.Value != ""
}

// IsValid reports whether the last validation accepted the field.
func (f *FormField) IsValid() bool {
	return f.Validity == Valid
}
