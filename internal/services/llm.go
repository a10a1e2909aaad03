package services

import (
	"context"

	"github.com/keerthikapopuri/gameforge/pkg/chat"
)

// CompletionOptions carries per-call sampling parameters. Each pipeline stage
// uses its own temperature and token budget.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// LLMService is the single interface the pipeline uses to talk to the model
// provider: messages in, text or error out. All stages go through it, and
// tests swap in MockLLM.
type LLMService interface {
	ChatCompletion(ctx context.Context, messages []chat.ChatMessage, opts CompletionOptions) (string, error)
}
