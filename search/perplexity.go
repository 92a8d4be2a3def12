// Package search resolves information needs detected during a meeting
// against the Perplexity API. Perplexity exposes an OpenAI-compatible
// chat-completions endpoint, so the adapter reuses the go-openai client
// pointed at a different base URL.
package search

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ojusave/rtms-perplexity/types"
)

const defaultBaseURL = "https://api.perplexity.ai"

const systemMessage = "You are a helpful assistant providing accurate, real-time information."

// Client issues single-shot search requests. Failures are soft: the caller
// logs the error and continues with the next chunk.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a Perplexity search client.
func NewClient(apiKey, model string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, model)
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// Search issues one request for the query. meetingContext is the transcript
// chunk that raised the information need and is passed along as grounding.
func (c *Client) Search(ctx context.Context, query, meetingContext string) (types.SearchResult, error) {
	system := systemMessage
	if meetingContext != "" {
		system += " Consider this context from the ongoing meeting: " + meetingContext
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return types.SearchResult{}, errors.Wrap(err, "perplexity request")
	}
	if len(resp.Choices) == 0 {
		return types.SearchResult{}, errors.New("perplexity returned no choices")
	}

	source := resp.Model
	if source == "" {
		source = c.model
	}
	return types.SearchResult{
		Query:   query,
		Snippet: strings.TrimSpace(resp.Choices[0].Message.Content),
		Source:  source,
	}, nil
}
