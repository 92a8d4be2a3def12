package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ojusave/rtms-perplexity/types"
)

const systemPrompt = "You analyze live meeting transcripts. Follow the requested output format exactly."

// Client analyzes transcript windows with an OpenAI-compatible chat model.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates an analyzer. baseURL may be empty to use the OpenAI
// default, or point at any OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// Analyze submits the merged transcript window and parses the structured
// text response into action items and information needs.
func (c *Client) Analyze(ctx context.Context, transcript string) (types.Analysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return types.Analysis{}, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(transcript)},
		},
	})
	if err != nil {
		return types.Analysis{}, errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return types.Analysis{}, errors.New("chat completion returned no choices")
	}

	return ParseAnalysis(resp.Choices[0].Message.Content), nil
}
