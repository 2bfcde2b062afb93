package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the judge contract: free-form text completion with no schema
// guarantee on the content.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

// Client talks to any OpenAI-compatible chat-completion endpoint
// (OpenRouter in production).
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *openai.Client
}

func NewClient(apiKey string, model string, baseURL string) *Client {
	if model == "" {
		model = "openai/gpt-4o"
	}
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("completion returned empty response")
	}

	return text, nil
}
