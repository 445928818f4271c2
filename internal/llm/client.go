// Package llm provides language model clients used to phrase policy summaries.
package llm

import (
	"context"
)

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// ChatMessage represents a chat message for LLM.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for LLM providers.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}

// Provider is the type of LLM provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// FromKeys picks a provider from the configured keys, preferring the default
// when both are set. A non-empty openAIBaseURL points the OpenAI client at a
// compatible endpoint. It returns nil when no key is configured.
func FromKeys(defaultProvider Provider, anthropicKey, openAIKey, openAIBaseURL string) (Client, error) {
	switch {
	case anthropicKey != "" && openAIKey != "":
		if defaultProvider == ProviderOpenAI {
			return newOpenAI(openAIKey, openAIBaseURL)
		}
		return NewAnthropicClient(anthropicKey)
	case anthropicKey != "":
		return NewAnthropicClient(anthropicKey)
	case openAIKey != "":
		return newOpenAI(openAIKey, openAIBaseURL)
	default:
		return nil, nil
	}
}

func newOpenAI(apiKey, baseURL string) (*OpenAIClient, error) {
	if baseURL != "" {
		return NewOpenAIClientWithBaseURL(apiKey, baseURL)
	}
	return NewOpenAIClient(apiKey)
}
