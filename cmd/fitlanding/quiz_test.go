package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(markdown string) (string, error) { return markdown, nil }

func newRunner(svc *fitlanding.Service, input string, scripted ...string) (*quizRunner, *bytes.Buffer) {
	var out bytes.Buffer
	return &quizRunner{
		svc:         svc,
		in:          bufio.NewReader(strings.NewReader(input)),
		out:         &out,
		render:      plain,
		scripted:    scripted,
		interactive: len(scripted) == 0,
	}, &out
}

func TestParseChoice(t *testing.T) {
	q, ok := domain.QuestionFor(domain.Step2)
	require.True(t, ok)

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"1", domain.ActivityBeginner, true},
		{" 2\n", domain.ActivityModerate, true},
		{"very-active", domain.ActivityVeryActive, true},
		{"0", "", false},
		{"5", "", false},
		{"energy", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseChoice(q, tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuizRunner_Scripted(t *testing.T) {
	svc := fitlanding.NewService(config.DefaultForm())
	r, out := newRunner(svc, "", domain.GoalEnergy, "2", domain.TimeModerate)

	require.NoError(t, r.run(context.Background(), "", true))

	text := out.String()
	assert.Contains(t, text, "## Step 1 of 3")
	assert.Contains(t, text, "## Step 3 of 3")
	assert.Contains(t, text, "# Endurance Builder")
	assert.Contains(t, text, domain.FieldGoals)
	assert.Contains(t, text, "endurance")
}

func TestQuizRunner_ScriptedUnknownOption(t *testing.T) {
	svc := fitlanding.NewService(config.DefaultForm())
	r, _ := newRunner(svc, "", "yoga")

	err := r.run(context.Background(), "", false)
	assert.ErrorIs(t, err, domain.ErrUnknownOption)
}

func TestQuizRunner_ScriptedTooFewAnswers(t *testing.T) {
	svc := fitlanding.NewService(config.DefaultForm())
	r, _ := newRunner(svc, "", domain.GoalMuscle)

	err := r.run(context.Background(), "", false)
	assert.ErrorContains(t, err, "no answer for step 2")
}

func TestQuizRunner_Resume(t *testing.T) {
	ctx := context.Background()
	svc := fitlanding.NewService(config.DefaultForm())

	qs, err := svc.StartQuiz(ctx)
	require.NoError(t, err)
	_, err = svc.Answer(ctx, qs.SessionID, domain.Step1, domain.GoalEnergy)
	require.NoError(t, err)

	r, out := newRunner(svc, "", domain.ActivityModerate, domain.TimeModerate)
	require.NoError(t, r.run(ctx, qs.SessionID, false))

	assert.NotContains(t, out.String(), "## Step 1 of 3")
	assert.Contains(t, out.String(), "Endurance Builder")

	stored, err := svc.Quiz(ctx, qs.SessionID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
}

func TestQuizRunner_UnknownSession(t *testing.T) {
	svc := fitlanding.NewService(config.DefaultForm())
	r, _ := newRunner(svc, "", domain.GoalEnergy)

	err := r.run(context.Background(), "missing", false)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestQuizRunner_Interactive(t *testing.T) {
	ctx := context.Background()
	svc := fitlanding.NewService(config.DefaultForm())
	r, out := newRunner(svc, "9\nenergy\nmoderate\n3\nn\n")

	require.NoError(t, r.run(ctx, "", false))

	text := out.String()
	assert.Contains(t, text, "choose 1-4")
	assert.Contains(t, text, "Prefill the contact form")

	ids, err := svc.Sessions().List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	stored, err := svc.Quiz(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, domain.TimeLong, stored.Answers.Get(domain.Step3))
}

func TestQuizRunner_InteractiveAccept(t *testing.T) {
	svc := fitlanding.NewService(config.DefaultForm())
	r, out := newRunner(svc, "1\n1\n1\nyes\n")

	require.NoError(t, r.run(context.Background(), "", false))
	assert.Contains(t, out.String(), domain.FieldExperience)
	assert.Contains(t, out.String(), "beginner")
}
