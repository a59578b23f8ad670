package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/fitlanding/pkg/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)
)

// Messages shown next to invalid fields.
const (
	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidPhone = "Please enter a valid phone number"
	MsgNameTooShort = "Name must be at least 2 characters"
)

// MinNameLength is the minimum trimmed length of the name field, in characters.
const MinNameLength = 2

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s is 7 to 20 digits, spaces, '+', '-', '(' or ')'.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Label returns the field label with the required marker removed.
func Label(f *domain.FormField) string {
	return strings.TrimSpace(strings.Replace(f.Label, "*", "", 1))
}

// Check evaluates the validation contract for one field without side effects.
// The message is empty when the field is valid.
func Check(f *domain.FormField) (domain.Validity, string) {
	value := strings.TrimSpace(f.Value)

	if value == "" {
		if !f.Required {
			return domain.Valid, ""
		}
		return domain.InvalidEmpty, Label(f) + " is required"
	}

	switch f.Kind {
	case domain.KindEmail:
		if !IsValidEmail(value) {
			return domain.InvalidFormat, MsgInvalidEmail
		}
	case domain.KindTel:
		if !IsValidPhone(value) {
			return domain.InvalidFormat, MsgInvalidPhone
		}
	case domain.KindSelect:
		if f.SelectedIndex == 0 {
			return domain.InvalidEmpty, "Please select a " + strings.ToLower(Label(f))
		}
	default:
		if f.ID == domain.FieldName && utf8.RuneCountInString(value) < MinNameLength {
			return domain.InvalidLength, MsgNameTooShort
		}
	}
	return domain.Valid, ""
}
