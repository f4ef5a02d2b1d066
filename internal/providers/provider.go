package providers

import (
	"context"
	"fmt"
)

// Request contains the prompts sent to an LLM for a review pass.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw completion from an LLM.
type Response struct {
	Content    string
	TokensUsed int
}

// Client is the provider abstraction. Implementations talk to one LLM API
// and return the raw text completion; parsing is the caller's job.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider client by name.
func New(provider, model string) (Client, error) {
	switch provider {
	case "gemini", "google":
		return NewGemini(model)
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// Names lists the supported provider names in display order.
func Names() []string {
	return []string{"gemini", "anthropic", "openai"}
}
