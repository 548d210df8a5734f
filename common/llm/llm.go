package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const defaultMaxTokens = 1024

var (
	ErrMissingAPIKey       = errors.New("API key is required")
	ErrEmptyCompletion     = errors.New("model returned no text")
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

// Config holds model client configuration.
type Config struct {
	Provider    string   // "gemini", "openai" or "anthropic"
	APIKey      string   // Required
	BaseURL     string   // Optional: custom API endpoint
	Model       string   // Provider default when empty
	MaxTokens   int      // Completion budget, defaults to 1024
	Temperature *float64 // nil = model default
}

// Client sends a single text prompt and returns a single text completion.
// Implementations never retry; a failed call is returned to the caller as-is.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
	Provider() string
}

type CompletionRequest struct {
	Prompt string
}

type CompletionResponse struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// NewClient selects the provider implementation named by cfg.Provider.
// An empty provider means Gemini.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		return newGeminiClient(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
