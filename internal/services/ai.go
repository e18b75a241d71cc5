package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type GeneratedChore struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardPoints int    `json:"rewardPoints"`
	Daily        bool   `json:"daily"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateChoresFromText extracts chore suggestions from free text using
// OpenAI GPT, with a point value and a daily flag per chore.
func (s *AIService) GenerateChoresFromText(ctx context.Context, text string) ([]GeneratedChore, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`Eres un asistente para una app de tareas del hogar. Extrae tareas concretas del siguiente texto.

Texto:
%s

Devuelve un array JSON con las tareas extraídas:
[
  {
    "title": "título corto de la tarea",
    "description": "descripción detallada",
    "rewardPoints": 10,
    "daily": false
  }
]

Reglas:
- Si no hay tareas, devuelve un array vacío []
- rewardPoints entre 5 y 50 según el esfuerzo
- daily es true solo para tareas que se repiten cada día
- Devuelve solo el JSON, sin texto adicional`, text)

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

	var chores []GeneratedChore
	if err := json.Unmarshal([]byte(content), &chores); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return chores, nil
}
