// Package config manages application configuration.
package config

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Decorate        DecorateConfig      `yaml:"decorate"`
	AltText         AltTextConfig       `yaml:"alt_text"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Endpoint  string `yaml:"endpoint,omitempty"` // for Ollama or custom OpenAI-compatible endpoints
}

// DecorateConfig contains decoration options.
type DecorateConfig struct {
	Selector       string `yaml:"selector"`        // locates teaser block roots
	PageURL        string `yaml:"page_url"`        // current page URL for host comparison; empty disables it
	TitleThreshold int    `yaml:"title_threshold"` // no-image title size boundary in runes
	AltFallback    string `yaml:"alt_fallback"`    // accessible-name fallback for unlabeled images
}

// AltTextConfig contains alt-text generation options.
type AltTextConfig struct {
	Temperature float64 `yaml:"temperature"`
	Language    string  `yaml:"language"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "anthropic",
		Providers: map[string]Provider{
			"openai": {
				APIKey:    "${OPENAI_API_KEY}",
				Model:     "gpt-4o-mini",
				MaxTokens: 256,
			},
			"anthropic": {
				APIKey:    "${ANTHROPIC_API_KEY}",
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 256,
			},
			"gemini": {
				APIKey:    "${GOOGLE_API_KEY}",
				Model:     "gemini-1.5-flash",
				MaxTokens: 256,
			},
			"ollama": {
				Endpoint:  "http://localhost:11434/v1",
				Model:     "llama3.2",
				MaxTokens: 256,
			},
		},
		Decorate: DecorateConfig{
			Selector:       `[data-component="teaser"]`,
			TitleThreshold: 53,
			AltFallback:    "Teaser image",
		},
		AltText: AltTextConfig{
			Temperature: 0.2,
			Language:    "en",
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}
