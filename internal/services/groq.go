package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/keerthikapopuri/gameforge/pkg/chat"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"

	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// ChatCompletionsService implements LLMService against an OpenAI-compatible
// chat completions endpoint. Groq and OpenAI share the wire format; only the
// base URL and credential differ.
type ChatCompletionsService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

var _ LLMService = (*ChatCompletionsService)(nil)

// chatCompletionsRequest is the request body for the chat completions API.
type chatCompletionsRequest struct {
	Model       string             `json:"model"`
	Messages    []chat.ChatMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Stream      bool               `json:"stream"`
}

type chatCompletionsChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string                  `json:"id"`
	Object  string                  `json:"object"`
	Created int64                   `json:"created"`
	Model   string                  `json:"model"`
	Choices []chatCompletionsChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewGroqService creates a client for the Groq chat completions API.
func NewGroqService(apiKey, modelName string) *ChatCompletionsService {
	return newChatCompletionsService(GroqBaseURL, apiKey, modelName)
}

// NewOpenAIService creates a client for the OpenAI chat completions API.
func NewOpenAIService(apiKey, modelName string) *ChatCompletionsService {
	return newChatCompletionsService(OpenAIBaseURL, apiKey, modelName)
}

func newChatCompletionsService(baseURL, apiKey, modelName string) *ChatCompletionsService {
	return &ChatCompletionsService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ChatCompletion sends the messages to the provider and returns the first
// choice's content.
func (s *ChatCompletionsService) ChatCompletion(ctx context.Context, messages []chat.ChatMessage, opts CompletionOptions) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}

	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	reqBody, err := json.Marshal(chatCompletionsRequest{
		Model:       s.modelName,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ccResp chatCompletionsResponse
	if err := json.Unmarshal(body, &ccResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if ccResp.Error != nil {
		return "", fmt.Errorf("API error: %s", ccResp.Error.Message)
	}

	if len(ccResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from API")
	}

	return ccResp.Choices[0].Message.Content, nil
}
