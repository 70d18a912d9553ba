package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiClient обращается к Gemini API для классификации текста отзывов.
// Ответ модели ожидается строгим JSON, парсинг выполняет moderation service
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient создает новый клиент Gemini
// Ключ берется из аргумента или переменной окружения GEMINI_API_KEY
func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = defaultModel
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateText отправляет prompt и возвращает текст первого кандидата
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
