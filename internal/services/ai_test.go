package services

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content string
	request openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.request = req
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestEstimateCalories(t *testing.T) {
	client := &fakeCompleter{content: "```json\n{\"calories\": 89.6}\n```"}
	ai := NewAIServiceWithClient(client)

	estimate, err := ai.EstimateCalories(context.Background(), "Banana", 100)
	require.NoError(t, err)

	assert.Equal(t, 90, estimate.Calories)
	assert.Equal(t, 100, estimate.ServingSize)
	require.Len(t, client.request.Messages, 1)
	assert.Contains(t, client.request.Messages[0].Content, "Banana")
}

func TestEstimateCalories_Unavailable(t *testing.T) {
	var ai *AIService
	_, err := ai.EstimateCalories(context.Background(), "Banana", 100)
	assert.ErrorIs(t, err, ErrEstimatorUnavailable)
}

func TestEstimateCalories_BadResponse(t *testing.T) {
	ai := NewAIServiceWithClient(&fakeCompleter{content: "about ninety"})
	_, err := ai.EstimateCalories(context.Background(), "Banana", 100)
	assert.Error(t, err)
}
