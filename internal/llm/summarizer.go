package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

const summarizerSystemPrompt = "You are an HR assistant. Rewrite the given policy points as a short " +
	"markdown bullet list for an employee. Keep every rule, add nothing new, no preamble."

// PolicySummarizer rephrases canned policy points through a Client.
type PolicySummarizer struct {
	client  Client
	model   string
	timeout time.Duration
}

// NewPolicySummarizer wraps client. An empty model uses the provider default.
func NewPolicySummarizer(client Client, model string, timeout time.Duration) *PolicySummarizer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PolicySummarizer{client: client, model: model, timeout: timeout}
}

// Summarize returns a markdown bullet list for topic.
func (s *PolicySummarizer) Summarize(ctx context.Context, topic string, points []string) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New("summarizer has no client")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var b strings.Builder
	fmt.Fprintf(&b, "Policy topic: %s\n", topic)
	for _, p := range points {
		b.WriteString("- " + p + "\n")
	}

	start := time.Now()
	resp, err := s.client.Complete(ctx, &CompletionRequest{
		Model:       s.model,
		System:      summarizerSystemPrompt,
		Messages:    []ChatMessage{{Role: "user", Content: b.String()}},
		MaxTokens:   300,
		Temperature: 0.2,
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordSummarizer(s.client.Name(), status, time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("summarize %s policy: %w", topic, err)
	}
	return strings.TrimSpace(resp.Content), nil
}
