package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding/pkg/domain"
)

func TestQuestionMarkdown(t *testing.T) {
	q, ok := domain.QuestionFor(domain.Step2)
	require.True(t, ok)

	md := QuestionMarkdown(q)
	assert.Contains(t, md, "Step 2 of 3")
	assert.Contains(t, md, q.Prompt)
	assert.Contains(t, md, "4. Very active `very-active`")
}

func TestRecommendationMarkdown(t *testing.T) {
	rec := domain.Recommend(domain.QuizAnswers{Goal: domain.GoalMuscle, Activity: domain.ActivityActive, Time: domain.TimeShort})
	md := RecommendationMarkdown(rec)
	assert.Contains(t, md, "# "+domain.ProgramMuscleBuilding)
	assert.Contains(t, md, "> "+domain.NoteShortTime)

	rec = domain.Recommend(domain.QuizAnswers{Goal: domain.GoalMuscle, Activity: domain.ActivityActive, Time: domain.TimeModerate})
	assert.NotContains(t, RecommendationMarkdown(rec), ">")
}

func TestNewRenderer_RendersHeading(t *testing.T) {
	for _, theme := range []string{domain.ThemeDark, domain.ThemeLight, ""} {
		out, err := NewRenderer(theme)("# Body Sculpting")
		require.NoError(t, err)
		assert.Contains(t, ansi.Strip(out), "Body Sculpting", "theme %q", theme)
	}
}

func TestFieldReport(t *testing.T) {
	fields := []domain.FormField{
		{FieldSpec: domain.FieldSpec{ID: "name"}, Validity: domain.Valid},
		{FieldSpec: domain.FieldSpec{ID: "email"}, Validity: domain.InvalidFormat, Message: "Please enter a valid email address"},
	}
	out := FieldReport(fields)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Please enter a valid email address")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Greater(t, buf.Len(), 100)
}
