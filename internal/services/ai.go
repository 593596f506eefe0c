package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var ErrEstimatorUnavailable = errors.New("calorie estimation is not configured")

// ChatCompleter is the subset of the OpenAI client used for estimates.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService estimates the calories of a food with OpenAI.
type AIService struct {
	client ChatCompleter
	model  string
}

// CalorieEstimate is the result of an estimate.
type CalorieEstimate struct {
	Calories    int `json:"calories"`
	ServingSize int `json:"serving_size"`
}

// NewAIService creates an AIService backed by the OpenAI API.
func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient creates an AIService with the given client.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{
		client: client,
		model:  openai.GPT4oMini,
	}
}

// EstimateCalories asks the model for the calories of servingSize grams of
// the named food. A nil service reports ErrEstimatorUnavailable.
func (s *AIService) EstimateCalories(ctx context.Context, name string, servingSize int) (*CalorieEstimate, error) {
	if s == nil || s.client == nil {
		return nil, ErrEstimatorUnavailable
	}

	prompt := fmt.Sprintf(`You are a nutrition assistant. Estimate the calories (kcal) of %d grams of the following food.

Food: %s

Answer with JSON only, in the form {"calories": <integer>}. Do not add any explanation.`, servingSize, strings.TrimSpace(name))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "` \n")

	var parsed struct {
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	if parsed.Calories < 0 {
		return nil, fmt.Errorf("negative calorie estimate %v", parsed.Calories)
	}

	return &CalorieEstimate{
		Calories:    int(parsed.Calories + 0.5),
		ServingSize: servingSize,
	}, nil
}
