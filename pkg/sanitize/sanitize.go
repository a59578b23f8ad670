// Package sanitize cleans visitor input before it is validated, logged or
// relayed to the form endpoint.
package sanitize

import (
	"errors"
	"fmt"
	"html"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// DefaultMaxInputSize is 4KB, enough for the longest textarea message.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "FITLANDING_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Input enforces the size limit, validates UTF-8 and strips dangerous
// control characters. Oversized input is rejected rather than truncated.
func Input(input string) (string, error) {
	limit := MaxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	return stripControl(input), nil
}

// StripMarkup removes every HTML element from s, keeping the text content.
// Values without markup are returned untouched, entities included.
func StripMarkup(s string) string {
	for i := 0; i < 3 && strings.ContainsRune(s, '<'); i++ {
		cleaned := html.UnescapeString(strictPolicy().Sanitize(s))
		if cleaned == s {
			break
		}
		s = cleaned
	}
	return s
}

// Value is the lenient form of Input used on already-accepted field values:
// invalid UTF-8 is replaced, control characters and markup are removed.
func Value(s string) string {
	return StripMarkup(stripControl(strings.ToValidUTF8(s, "�")))
}

// Field adapts Value to form.WithValueFilter.
func Field(_ string, value string) string {
	return Value(value)
}

func stripControl(input string) string {
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxInputSize returns the configured input limit in bytes.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
