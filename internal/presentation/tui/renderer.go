package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer. theme follows the persisted
// preference: "dark" and "light" force a style, anything else auto-detects.
func NewRenderer(theme string) Renderer {
	style := glamour.WithAutoStyle()
	switch theme {
	case domain.ThemeDark:
		style = glamour.WithStandardStyle("dark")
	case domain.ThemeLight:
		style = glamour.WithStandardStyle("light")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// QuestionMarkdown renders a wizard step as a numbered list of options.
func QuestionMarkdown(q domain.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Step %d of %d\n\n%s\n\n", int(q.Step), domain.QuestionCount, q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s `%s`\n", i+1, opt.Label, opt.Value)
	}
	return b.String()
}

// RecommendationMarkdown renders the results panel.
func RecommendationMarkdown(rec domain.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", rec.Program, rec.Description)
	if rec.TimeNote != "" {
		fmt.Fprintf(&b, "\n> %s\n", rec.TimeNote)
	}
	return b.String()
}

// FieldReport lists the validation outcome of every field.
func FieldReport(fields []domain.FormField) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Message != "" {
			fmt.Fprintf(&b, "%-12s %s\n", f.ID, Failure(f.Message))
			continue
		}
		fmt.Fprintf(&b, "%-12s %s\n", f.ID, Success("ok"))
	}
	return b.String()
}
