package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/pkg/domain"
)

func newTestServer() *Server {
	return NewServer(fitlanding.NewService(config.DefaultForm()))
}

func TestValidateContact(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	res, err := s.handleValidateContact(ctx, mcp.CallToolRequest{}, ContactArgs{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Goals:      "endurance",
		Experience: "advanced",
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = s.handleValidateContact(ctx, mcp.CallToolRequest{}, ContactArgs{Name: "Jane Doe", Email: "jane.example.com"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, domain.FieldEmail, res.FirstInvalid)

	_, err = s.handleValidateContact(ctx, mcp.CallToolRequest{}, ContactArgs{Name: "Jane", Goals: "juggling"})
	assert.ErrorIs(t, err, domain.ErrUnknownOption)
}

func TestRecommend(t *testing.T) {
	s := newTestServer()

	res, err := s.handleRecommend(context.Background(), mcp.CallToolRequest{}, RecommendArgs{
		Goal: domain.GoalWeightLoss, Activity: domain.ActivityBeginner, Time: domain.TimeLong,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramBeginnerFatLoss, res.Recommendation.Program)
	assert.Equal(t, domain.NoteLongTime, res.Recommendation.TimeNote)
	assert.Equal(t, []domain.Prefill{
		{FieldID: domain.FieldGoals, Value: "weight-loss"},
		{FieldID: domain.FieldExperience, Value: "beginner"},
	}, res.Prefills)

	_, err = s.handleRecommend(context.Background(), mcp.CallToolRequest{}, RecommendArgs{Goal: "flying", Activity: domain.ActivityActive, Time: domain.TimeShort})
	assert.ErrorIs(t, err, domain.ErrUnknownOption)

	_, err = s.handleRecommend(context.Background(), mcp.CallToolRequest{}, RecommendArgs{Goal: domain.GoalMuscle})
	assert.ErrorIs(t, err, domain.ErrQuizIncomplete)
}

func TestQuizTools(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	qs, err := s.handleStart(ctx, mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	require.NotEmpty(t, qs.SessionID)

	_, err = s.handleAccept(ctx, mcp.CallToolRequest{}, SessionArgs{SessionID: qs.SessionID})
	assert.ErrorIs(t, err, domain.ErrQuizIncomplete)

	_, err = s.handleStep(ctx, mcp.CallToolRequest{}, StepArgs{SessionID: qs.SessionID, Step: 3, Value: domain.TimeLong})
	assert.ErrorIs(t, err, domain.ErrStepMismatch)

	for i, v := range []string{domain.GoalToning, domain.ActivityModerate, domain.TimeModerate} {
		qs, err = s.handleStep(ctx, mcp.CallToolRequest{}, StepArgs{SessionID: qs.SessionID, Step: i + 1, Value: v})
		require.NoError(t, err)
	}
	assert.True(t, qs.Completed)

	handOff, err := s.handleAccept(ctx, mcp.CallToolRequest{}, SessionArgs{SessionID: qs.SessionID})
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramBodySculpting, handOff.Recommendation.Program)
	assert.Empty(t, handOff.Recommendation.TimeNote)

	_, err = s.handleStep(ctx, mcp.CallToolRequest{}, StepArgs{Step: 1, Value: domain.GoalToning})
	assert.Error(t, err)
}

func TestStructuredHandler_BindsArguments(t *testing.T) {
	s := newTestServer()
	handler := mcp.NewStructuredToolHandler(s.handleRecommend)

	req := mcp.CallToolRequest{}
	req.Params.Name = "quiz_recommend"
	req.Params.Arguments = map[string]any{
		"goal":     domain.GoalMuscle,
		"activity": domain.ActivityVeryActive,
		"time":     domain.TimeShort,
	}
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var got RecommendResult
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, domain.ProgramMuscleBuilding, got.Recommendation.Program)
}

func TestJSONResource(t *testing.T) {
	contents, err := jsonResource(QuestionsResourceURI, domain.Questions)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, domain.GoalWeightLoss)
}
