package llm

import (
	"context"
	"fmt"
	"strings"

	errx "github.com/krishigpt/server/internal/core/error"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

// SamplingConfig fixes the generation parameters for every request.
// The values are a design choice carried at the defaults below, not
// semantically load-bearing.
type SamplingConfig struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// DefaultSampling returns the fixed production sampling configuration.
func DefaultSampling() SamplingConfig {
	return SamplingConfig{Temperature: 0.4, TopP: 0.9, MaxTokens: 800}
}

// Client wraps the provider's OpenAI-compatible completion API.
type Client struct {
	api *openai.Client
}

func NewClient(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Complete sends the assembled messages to the named model and returns
// the assistant text. All failure kinds are equivalent to the caller:
// retry or fall back, never branch on the error.
func (c *Client) Complete(ctx context.Context, model string, msgs []*schema.Message, sampling SamplingConfig) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toChatMessages(msgs),
		Temperature: sampling.Temperature,
		TopP:        sampling.TopP,
		MaxTokens:   sampling.MaxTokens,
	})
	if err != nil {
		return "", errx.WrapLLM(err)
	}
	if len(resp.Choices) == 0 {
		return "", errx.WrapLLM(fmt.Errorf("empty completion response"))
	}

	logUsage(model, resp.Usage)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Probe issues a minimal, low-cost completion to verify that the model
// identifier is currently served by the provider.
func (c *Client) Probe(ctx context.Context, model string) error {
	_, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "test"},
		},
		MaxTokens: 5,
	})
	if err != nil {
		return errx.WrapLLM(err)
	}
	return nil
}

func toChatMessages(msgs []*schema.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		if m == nil || m.Content == "" {
			continue
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}
