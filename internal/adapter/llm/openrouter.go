package llm

import (
	"context"
	"fmt"

	"vidquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenRouterProvider is a domain.TextProvider backed by one model slug on an
// OpenAI-compatible endpoint (OpenRouter).
type OpenRouterProvider struct {
	llm   *openai.LLM
	model string
}

// NewOpenRouterProvider creates a provider for a single OpenRouter model.
func NewOpenRouterProvider(baseURL, apiKey, model string) (*OpenRouterProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenRouter model name cannot be empty")
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter client for %s: %w", model, err)
	}

	return &OpenRouterProvider{llm: client, model: model}, nil
}

// Name implements domain.TextProvider
func (p *OpenRouterProvider) Name() string {
	return p.model
}

// Complete implements domain.TextProvider
func (p *OpenRouterProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return generateText(ctx, p.llm, systemPrompt, userPrompt)
}

// generateText runs a system+user chat completion and returns the first
// choice's text. Shared by every langchaingo-backed provider.
func generateText(ctx context.Context, model llms.Model, systemPrompt, userPrompt string) (string, error) {
	resp, err := model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
		},
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(2000),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ domain.TextProvider = (*OpenRouterProvider)(nil)
