package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type fakeCompleter struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func newTestEnhancer(f *fakeCompleter) *Enhancer {
	return &Enhancer{client: f, model: openai.GPT3Dot5Turbo, timeout: time.Second}
}

const sampleJSON = `{
  "tagline": "Flow with us",
  "hero_description": "Yoga for every body.",
  "about": "About text.",
  "pills": ["Zen", "Flexible"],
  "services": [{"name": "Clases", "description": "Group classes."}],
  "stats": {"Happy Clients": "500+"}
}`

func TestGenerateAllParsesJSON(t *testing.T) {
	f := &fakeCompleter{content: sampleJSON}
	out, err := newTestEnhancer(f).GenerateAll(context.Background(), domain.EnhanceInput{
		BusinessName: "Acme Yoga",
		Industry:     "wellness",
		Services:     []string{"Clases"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Flow with us", out.Tagline)
	assert.Equal(t, []string{"Zen", "Flexible"}, out.Pills)
	assert.Equal(t, "500+", out.Stats["Happy Clients"])
	require.Len(t, out.Services, 1)
	assert.Equal(t, "Clases", out.Services[0].Name)

	// el prompt lleva los datos del negocio
	require.Len(t, f.lastReq.Messages, 2)
	assert.Contains(t, f.lastReq.Messages[1].Content, "Acme Yoga")
	assert.Contains(t, f.lastReq.Messages[1].Content, "wellness")
}

func TestGenerateAllStripsCodeFences(t *testing.T) {
	f := &fakeCompleter{content: "```json\n" + sampleJSON + "\n```"}
	out, err := newTestEnhancer(f).GenerateAll(context.Background(), domain.EnhanceInput{BusinessName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Flow with us", out.Tagline)
}

func TestGenerateAllPropagatesAPIError(t *testing.T) {
	f := &fakeCompleter{err: errors.New("rate limited")}
	_, err := newTestEnhancer(f).GenerateAll(context.Background(), domain.EnhanceInput{BusinessName: "Acme"})
	assert.Error(t, err)
}

func TestGenerateAllRejectsGarbage(t *testing.T) {
	f := &fakeCompleter{content: "Sure! Here is your content: tagline..."}
	_, err := newTestEnhancer(f).GenerateAll(context.Background(), domain.EnhanceInput{BusinessName: "Acme"})
	assert.Error(t, err)
}
