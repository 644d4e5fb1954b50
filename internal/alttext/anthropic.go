package alttext

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicProvider generates alt text via the Anthropic Claude API.
type AnthropicProvider struct {
	apiKey string
	model  string
	client anthropic.Client
}

// NewAnthropicProvider creates an Anthropic provider. An empty model selects
// DefaultAnthropicModel.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Validate implements Provider.
func (p *AnthropicProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("anthropic API key not set (ANTHROPIC_API_KEY)")
	}
	return nil
}

// Describe implements Provider.
func (p *AnthropicProvider) Describe(ctx context.Context, img Image, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: anthropic.Float(opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt(opts)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(img, opts))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return &Result{
		AltText: trimAltText(sb.String()),
		Model:   p.model,
		Usage: TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
