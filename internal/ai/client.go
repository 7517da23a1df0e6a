// Package ai generates the colleague's narrative replies and the rolling
// conversation summaries. Both calls are treated as unreliable collaborators;
// callers decide what a failure means and nothing here retries.
package ai

import (
	"context"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1024

type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = openai.GPT3Dot5Turbo1106
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// ChatResponse generates the colleague's reply from the engine's context
// bundle. The bundle is the complete generation context; nothing outside it
// reaches the model.
func (c *Client) ChatResponse(ctx context.Context, bundle engine.ContextBundle) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: colleaguePrompt(bundle)},
	}
	for _, line := range bundle.RecentMessages {
		role := openai.ChatMessageRoleUser
		if line.Sender == models.SenderColleague {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: line.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: bundle.PlayerMessage,
	})
	return c.complete(ctx, messages)
}

// Summarize compacts the previous summary and the recent window into a new
// rolling summary.
func (c *Client) Summarize(ctx context.Context, previous string, recent []models.Message) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: summaryPrompt(previous)},
		{Role: openai.ChatMessageRoleUser, Content: transcript(recent)},
	}
	return c.complete(ctx, messages)
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: maxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
