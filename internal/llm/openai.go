// Package llm wraps the hosted OpenAI services the chatbot depends on:
// chat completions for replies, a zero-temperature completion for
// transcript summaries, and embeddings for retrieval queries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vua-solutions/vua/internal/models"
)

const summaryInstruction = "Condense the following customer-support conversation into a short summary. Keep the customer's situation, stated facts and any commitments made."

// Config configures the OpenAI client.
type Config struct {
	APIKey         string
	ChatModel      string // defaults to gpt-3.5-turbo-1106
	EmbeddingModel string // defaults to text-embedding-ada-002
}

// Client is a thin wrapper over the OpenAI API. One completion per
// call, no retry, no streaming; transport failures propagate to the
// caller.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
}

// NewClient creates an OpenAI-backed client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: missing API key")
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-3.5-turbo-1106"
	}
	embeddingModel := openai.EmbeddingModel(cfg.EmbeddingModel)
	if cfg.EmbeddingModel == "" {
		embeddingModel = openai.AdaEmbeddingV2
	}
	return &Client{
		api:            openai.NewClient(cfg.APIKey),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
	}, nil
}

// Generate sends the assembled prompt as a single user message and
// returns the completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Summarize condenses a transcript into one short summary string,
// using temperature 0 for a stable result.
func (c *Client) Summarize(ctx context.Context, messages []models.Message) (string, error) {
	var transcript strings.Builder
	for _, m := range messages {
		transcript.WriteString(m.Role)
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summaryInstruction},
			{Role: openai.ChatMessageRoleUser, Content: transcript.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarize: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for a retrieval query.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: c.embeddingModel,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings: no data returned")
	}
	return resp.Data[0].Embedding, nil
}
