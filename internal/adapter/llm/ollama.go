package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vidquiz/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider is a domain.TextProvider backed by a local Ollama server.
// It sits last in the fallback chain: no API key, no egress.
type OllamaProvider struct {
	llm   *ollama.LLM
	model string
}

// NewOllamaProvider creates a provider for a local Ollama model.
func NewOllamaProvider(serverURL, model string) (*OllamaProvider, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: 20 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	client, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{llm: client, model: model}, nil
}

// Name implements domain.TextProvider
func (p *OllamaProvider) Name() string {
	return "ollama/" + p.model
}

// Complete implements domain.TextProvider
func (p *OllamaProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return generateText(ctx, p.llm, systemPrompt, userPrompt)
}

var _ domain.TextProvider = (*OllamaProvider)(nil)
