// Package agents provides the language-model adapter for parsing tasks,
// with rule-based fallback on every failure path.
package agents

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"traderdesk/internal/config"
)

// CompletionOptions carries the per-task sampling budget.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}

// LLMClient defines the interface for LLM interactions.
type LLMClient interface {
	// CompleteWithSystem sends a system message and a user prompt to the
	// LLM and returns the response text.
	CompleteWithSystem(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error)
}

// OpenAIClient implements LLMClient using the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI LLM client. The configured
// timeout bounds every outbound call; a timeout degrades the same way
// as any other transport failure.
func NewOpenAIClient(creds config.OpenAICredentials) *OpenAIClient {
	cfg := openai.DefaultConfig(creds.APIKey)
	if creds.BaseURL != "" {
		cfg.BaseURL = creds.BaseURL
	}
	timeout := creds.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  creds.Model,
	}
}

// CompleteWithSystem sends a prompt with system message to the LLM.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}
