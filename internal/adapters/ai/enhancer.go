// Package ai enriquece el copy del perfil vía chat completion.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// chatCompleter es lo único que usamos del cliente; interface para tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Enhancer struct {
	client  chatCompleter
	model   string
	timeout time.Duration
}

func NewEnhancer(apiKey string) *Enhancer {
	return &Enhancer{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT3Dot5Turbo,
		timeout: 30 * time.Second,
	}
}

const systemPrompt = "You are a content generator for business websites. Always return valid JSON with every field requested."

// GenerateAll pide todo el contenido en una sola completion. El caller trata
// cualquier error como no-fatal y sigue con el contenido manual.
func (e *Enhancer) GenerateAll(ctx context.Context, in domain.EnhanceInput) (*domain.EnhancedContent, error) {
	prompt := fmt.Sprintf(`Generate website content for this business:

Business Name: %s
Industry: %s
Description: %s
Services: %s

Return ONLY a JSON object in this exact format, no other text:
{
  "tagline": "5-10 word catchy tagline",
  "hero_description": "1-2 sentence hero description",
  "about": "2-3 paragraph about text (~150 words), professional and trustworthy",
  "pills": ["3-6 short feature pills"],
  "services": [{"name": "Service", "description": "one-sentence value description (15-20 words)"}],
  "stats": {"Years of Experience": "10+", "Happy Clients": "500+"}
}

Make it fully relevant to the %s industry and engaging for users.`,
		in.BusinessName, in.Industry, in.Description, strings.Join(in.Services, ", "), in.Industry)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	resp, err := e.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("respuesta vacía del modelo")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out domain.EnhancedContent
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return nil, fmt.Errorf("parseando respuesta del modelo: %w", err)
	}
	return &out, nil
}
