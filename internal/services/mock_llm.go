package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/keerthikapopuri/gameforge/pkg/chat"
)

// MockLLM is a scripted LLMService for tests. Responses are consumed in
// order; a custom RespondFunc takes precedence when set.
type MockLLM struct {
	RespondFunc func(ctx context.Context, messages []chat.ChatMessage, opts CompletionOptions) (string, error)

	// Track calls for assertions
	Calls []CompletionCall

	responses []string
	err       error
	mu        sync.Mutex
}

var _ LLMService = (*MockLLM)(nil)

type CompletionCall struct {
	Messages []chat.ChatMessage
	Opts     CompletionOptions
}

// NewMockLLM creates a mock that replies with the given responses in order.
func NewMockLLM(responses ...string) *MockLLM {
	return &MockLLM{responses: responses}
}

// SetError makes every subsequent call fail with err.
func (m *MockLLM) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Enqueue appends responses to the script.
func (m *MockLLM) Enqueue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

func (m *MockLLM) ChatCompletion(ctx context.Context, messages []chat.ChatMessage, opts CompletionOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, CompletionCall{Messages: messages, Opts: opts})

	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, messages, opts)
	}
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mock llm: script exhausted after %d calls", len(m.Calls))
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// CallCount returns how many completions were requested.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastMessages returns the message slice of the most recent call.
func (m *MockLLM) LastMessages() []chat.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	msgs := m.Calls[len(m.Calls)-1].Messages
	out := make([]chat.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
