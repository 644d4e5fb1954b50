package alttext

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider generates alt text via the OpenAI chat API. It also serves
// OpenAI-compatible endpoints (e.g., a local Ollama server) via a custom
// base URL.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIProvider creates an OpenAI provider. An empty model selects
// DefaultOpenAIModel; a non-empty endpoint overrides the API base URL.
func NewOpenAIProvider(apiKey, model, endpoint string) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}
	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Validate implements Provider.
func (p *OpenAIProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("openai API key not set (OPENAI_API_KEY)")
	}
	return nil
}

// Describe implements Provider.
func (p *OpenAIProvider) Describe(ctx context.Context, img Image, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(opts)},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(img, opts)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &Result{
		AltText: trimAltText(resp.Choices[0].Message.Content),
		Model:   p.model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
