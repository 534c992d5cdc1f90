package llm

import (
	"context"
	"errors"
)

// ErrAPIKeyNotSet is returned when the selected provider has no credentials.
var ErrAPIKeyNotSet = errors.New("API key is not set")

// Message is a minimal chat message format for the provider
type Message struct {
	Role    string // system | user | assistant
	Content string
}

// Usage captures token accounting if available
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ModelConfig contains per-request model settings
type ModelConfig struct {
	Model       string
	Temperature float64
}

// Provider abstracts one synchronous text-generation call.
type Provider interface {
	Name() string
	Generate(ctx context.Context, messages []Message, cfg ModelConfig) (text string, usage Usage, err error)
}

// UserPrompt wraps a single prompt as a one-message conversation.
func UserPrompt(prompt string) []Message {
	return []Message{{Role: "user", Content: prompt}}
}

// splitMessages separates system instructions from the conversation text.
func splitMessages(messages []Message) (instructions string, input string) {
	for _, m := range messages {
		switch m.Role {
		case "system":
			instructions = joinNonEmpty(instructions, m.Content)
		default:
			input = joinNonEmpty(input, m.Content)
		}
	}
	return instructions, input
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}
