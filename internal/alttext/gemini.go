package alttext

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider generates alt text via the Google Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a Gemini provider. An empty model selects
// DefaultGeminiModel.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

// Name implements Provider.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Validate implements Provider.
func (p *GeminiProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("gemini API key not set (GOOGLE_API_KEY)")
	}
	return nil
}

// Describe implements Provider.
func (p *GeminiProvider) Describe(ctx context.Context, img Image, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model,
		genai.Text(buildPrompt(img, opts)),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr(float32(opts.Temperature)),
			MaxOutputTokens:   int32(opts.MaxTokens),
			SystemInstruction: genai.NewContentFromText(systemPrompt(opts), genai.RoleUser),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	result := &Result{
		AltText: trimAltText(resp.Text()),
		Model:   p.model,
	}
	if resp.UsageMetadata != nil {
		result.Usage = TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}
