package alttext

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Language != "en" {
		t.Errorf("expected language en, got %s", opts.Language)
	}
	if opts.MaxTokens != 256 {
		t.Errorf("expected 256 max tokens, got %d", opts.MaxTokens)
	}
	if opts.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %f", opts.Temperature)
	}
}

func TestSystemPrompt(t *testing.T) {
	if got := systemPrompt(Options{}); got != defaultSystemPrompt {
		t.Error("expected default system prompt when none is set")
	}
	if got := systemPrompt(Options{Prompt: "custom"}); got != "custom" {
		t.Errorf("expected custom prompt, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	img := Image{
		Src:         "/content/teaser.jpg",
		Title:       "Short title",
		Topic:       "Healthcare",
		Description: "A short description.",
	}

	prompt := buildPrompt(img, Options{Language: "de"})

	for _, want := range []string{
		"/content/teaser.jpg",
		"Short title",
		"Healthcare",
		"A short description.",
		"language: de",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_MinimalImage(t *testing.T) {
	prompt := buildPrompt(Image{Src: "/x.jpg"}, Options{})

	if !strings.Contains(prompt, "/x.jpg") {
		t.Errorf("expected prompt to contain the image src:\n%s", prompt)
	}
	for _, absent := range []string{"titled", "Topic:", "description"} {
		if strings.Contains(prompt, absent) {
			t.Errorf("expected prompt without %q for a bare image:\n%s", absent, prompt)
		}
	}
}

func TestTrimAltText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "A lab technician at work", "A lab technician at work"},
		{"surrounding whitespace", "  A lab technician at work \n", "A lab technician at work"},
		{"quoted", `"A lab technician at work"`, "A lab technician at work"},
		{"quoted with whitespace", ` "A lab technician at work" `, "A lab technician at work"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := trimAltText(tc.input); got != tc.want {
				t.Errorf("trimAltText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestProviderDefaults(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		wantName string
	}{
		{"anthropic", NewAnthropicProvider("key", ""), "anthropic"},
		{"openai", NewOpenAIProvider("key", "", ""), "openai"},
		{"gemini", NewGeminiProvider("key", ""), "gemini"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.provider.Name(); got != tc.wantName {
				t.Errorf("expected name %q, got %q", tc.wantName, got)
			}
			if err := tc.provider.Validate(); err != nil {
				t.Errorf("expected provider with key to validate, got %v", err)
			}
		})
	}
}

func TestProviderValidateMissingKey(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"anthropic", NewAnthropicProvider("", "")},
		{"openai", NewOpenAIProvider("", "", "")},
		{"gemini", NewGeminiProvider("", "")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.provider.Validate(); err == nil {
				t.Error("expected validation error without an API key")
			}
		})
	}
}
