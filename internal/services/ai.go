package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/worklens/work-calendar-api/internal/constants"
)

type AIService struct {
	client *openai.Client
}

// ExtractedTask is a task draft pulled out of free text. It is returned to the
// caller for review and is not persisted.
type ExtractedTask struct {
	Description  string  `json:"description"`
	FillDate     *string `json:"fill_date"`
	DurationDays int     `json:"duration_days"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// ExtractTasksFromText analyzes text and extracts dated task drafts using OpenAI GPT
func (s *AIService) ExtractTasksFromText(ctx context.Context, text string) ([]ExtractedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a work-tracking assistant. Extract concrete work tasks from the text below.

Text:
%s

Return a JSON array of extracted tasks in this exact shape:
[
  {
    "description": "short description of the task",
    "fill_date": "the date the work falls on, YYYY-MM-DD, or null if not stated",
    "duration_days": 1
  }
]

Rules:
- Return an empty array [] if there are no tasks.
- fill_date must be a date-only string (no time, no timezone) or null.
- duration_days is the number of calendar days the work takes; use 1 when unclear.
- Return only the JSON, no commentary.`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []ExtractedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(tasks) > constants.MaxExtractedTasks {
		tasks = tasks[:constants.MaxExtractedTasks]
	}

	return tasks, nil
}
