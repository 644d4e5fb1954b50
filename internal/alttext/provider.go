// Package alttext provides the LLM provider interface and registry for
// generating image alt text. It is an optional enrichment stage: the
// decorator's generic accessible-name fallback applies whenever no provider
// is configured.
package alttext

import (
	"context"
	"fmt"
	"strings"
)

// Image describes a teaser image and the content surrounding it. Providers
// work from this context; image bytes are never fetched.
type Image struct {
	Src         string `json:"src"`
	Title       string `json:"title,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
}

// Provider is the interface that all alt-text providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Describe returns alt text for the image.
	Describe(ctx context.Context, img Image, opts Options) (*Result, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// Options contains options for alt-text generation.
type Options struct {
	Language    string  `json:"language,omitempty"`    // output language (e.g., "en", "de")
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Prompt      string  `json:"prompt,omitempty"`      // custom system prompt
}

// Result contains the result of alt-text generation.
type Result struct {
	AltText string     `json:"alt_text"`
	Usage   TokenUsage `json:"usage"`
	Model   string     `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Language:    "en",
		MaxTokens:   256,
		Temperature: 0.2,
	}
}

// defaultSystemPrompt steers providers toward usable alt text.
const defaultSystemPrompt = "You write concise, descriptive alt text for images on content-teaser cards. " +
	"Respond with the alt text only: one sentence, under 125 characters, " +
	"without phrases like \"image of\" or \"picture of\"."

// systemPrompt returns the effective system prompt for opts.
func systemPrompt(opts Options) string {
	if opts.Prompt != "" {
		return opts.Prompt
	}
	return defaultSystemPrompt
}

// buildPrompt assembles the user prompt from the image context.
func buildPrompt(img Image, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write alt text for the teaser image at %s.\n", img.Src)
	if img.Title != "" {
		fmt.Fprintf(&sb, "The teaser is titled: %s\n", img.Title)
	}
	if img.Topic != "" {
		fmt.Fprintf(&sb, "Topic: %s\n", img.Topic)
	}
	if img.Description != "" {
		fmt.Fprintf(&sb, "Teaser description: %s\n", img.Description)
	}
	if opts.Language != "" {
		fmt.Fprintf(&sb, "Answer in language: %s\n", opts.Language)
	}
	return sb.String()
}

// trimAltText normalizes provider output into attribute-ready text.
func trimAltText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"")
	return strings.TrimSpace(s)
}
