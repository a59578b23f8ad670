package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding/pkg/sanitize"
)

func TestInput_SizeLimit(t *testing.T) {
	limit := sanitize.DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sanitize.Input(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, sanitize.ErrInputTooLarge)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInput_EnvOverride(t *testing.T) {
	t.Setenv(sanitize.EnvMaxInputSize, "8")
	_, err := sanitize.Input("123456789")
	assert.ErrorIs(t, err, sanitize.ErrInputTooLarge)

	t.Setenv(sanitize.EnvMaxInputSize, "garbage")
	assert.Equal(t, sanitize.DefaultMaxInputSize, sanitize.MaxInputSize())
}

func TestInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Hello World", "Hello World"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitize.Input(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := sanitize.Input("bad\xffutf8")
	assert.ErrorIs(t, err, sanitize.ErrInvalidUTF8)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Hello", sanitize.StripMarkup("<b>Hello</b>"))
	assert.Equal(t, "", sanitize.StripMarkup("<script>alert(1)</script>"))
	assert.Equal(t, "Tom & Jerry", sanitize.StripMarkup("Tom & Jerry"))
	assert.Equal(t, "Tom & Jerry", sanitize.StripMarkup("<i>Tom</i> & Jerry"))
	assert.Equal(t, "1 < 2", sanitize.StripMarkup("1 < 2"))
}

func TestValue(t *testing.T) {
	assert.Equal(t, "Hi there", sanitize.Value("<p>Hi\x07 there</p>"))
	assert.Equal(t, "a�b", sanitize.Value("a\xffb"))
	assert.Equal(t, "jane@example.com", sanitize.Field("email", "jane@example.com"))
}
