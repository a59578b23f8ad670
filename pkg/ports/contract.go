package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-quiz-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewQuizSession(sessionID)
		state.Step = domain.Step3
		state.Answers.Goal = domain.GoalMuscle
		state.Answers.Activity = domain.ActivityActive

		require.NoError(t, store.Save(ctx, sessionID, state), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.Step3, loaded.Step)
		assert.Equal(t, domain.GoalMuscle, loaded.Answers.Goal)
		assert.Equal(t, domain.ActivityActive, loaded.Answers.Activity)
		assert.Empty(t, loaded.Answers.Time)
		assert.False(t, loaded.Completed)
	})

	t.Run("Recommendation Round Trip", func(t *testing.T) {
		id := sessionID + "-done"
		state := domain.NewQuizSession(id)
		state.Answers = domain.QuizAnswers{Goal: domain.GoalToning, Activity: domain.ActivityBeginner, Time: domain.TimeLong}
		rec := domain.Recommend(state.Answers)
		state.Step = domain.StepResults
		state.Completed = true
		state.Recommendation = &rec
		defer func() { _ = store.Delete(ctx, id) }()

		require.NoError(t, store.Save(ctx, id, state))
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, loaded.Recommendation)
		assert.Equal(t, domain.ProgramBodySculpting, loaded.Recommendation.Program)
		assert.True(t, loaded.Completed)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewQuizSession(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewQuizSession(id1))
		_ = store.Save(ctx, id2, domain.NewQuizSession(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunPreferenceStoreContract verifies a PreferenceStore implementation.
func RunPreferenceStoreContract(t *testing.T, store PreferenceStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, domain.PrefTheme)
	assert.ErrorIs(t, err, domain.ErrPreferenceNotFound)

	require.NoError(t, store.Set(ctx, domain.PrefTheme, domain.ThemeDark))
	require.NoError(t, store.Set(ctx, domain.PrefCookieConsent, "true"))

	theme, err := store.Get(ctx, domain.PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	require.NoError(t, store.Set(ctx, domain.PrefTheme, domain.ThemeLight))
	theme, err = store.Get(ctx, domain.PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme, "Set should overwrite")
}
