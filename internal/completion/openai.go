package completion

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sokinpui/genapp/internal/config"
)

// OpenAI is a Client backed by an OpenAI-compatible chat-completion API.
// It reads the configuration on every call, so a credential swapped in (or
// removed) mid-session takes effect immediately.
type OpenAI struct {
	cfg *config.Config
}

// NewOpenAI creates a client around the given settings.
func NewOpenAI(cfg *config.Config) *OpenAI {
	return &OpenAI{cfg: cfg}
}

// Complete issues a single chat-completion request and returns the full
// response text. There is no retry; a single failure surfaces to the caller.
func (c *OpenAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	clientCfg := openai.DefaultConfig(c.cfg.APIKey)
	if c.cfg.BaseURL != "" {
		clientCfg.BaseURL = c.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrService)
	}
	return resp.Choices[0].Message.Content, nil
}
