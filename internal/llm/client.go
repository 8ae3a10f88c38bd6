// Package llm abstracts the generative text service behind a prompt-to-text
// client with a typed error taxonomy.
package llm

import "context"

// Client is the black-box generative service contract: prompt in, text out.
// Failures are reported through the package error types: *AuthError for
// credential problems, *RateLimitedError with a retry hint, *ServiceError for
// transient server-side failures.
type Client interface {
	// Complete sends one prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider. Only Gemini is
// implemented today.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}
