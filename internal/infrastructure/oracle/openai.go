// Package oracle backs both the classification and transformation oracles
// with an OpenAI-compatible chat-completion API in JSON mode.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// Config describes how to contact the API. BaseURL may point at any
// OpenAI-compatible endpoint; empty uses the default.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implements both oracle ports over one chat-completion client.
type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

var (
	_ ports.ClassificationOracle = (*Client)(nil)
	_ ports.TransformOracle      = (*Client)(nil)
)

// NewClient builds a client with a bounded per-call timeout.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	conf.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	return &Client{api: openai.NewClientWithConfig(conf), model: model, logger: logger}
}

// Classify asks the model for a {"classifications": [...]} object and
// returns the raw label strings; vocabulary filtering happens upstream.
func (c *Client) Classify(ctx context.Context, text string) ([]string, error) {
	content, err := c.complete(ctx, classifyPrompt, userMessage(text, "Classify this post."))
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Classifications []string `json:"classifications"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decode classification response: %w", err)
	}
	return parsed.Classifications, nil
}

// Transform asks the model for the label's JSON object shape and returns it
// undecoded; defaulting and validation happen upstream.
func (c *Client) Transform(ctx context.Context, label domain.Label, text string) (map[string]any, error) {
	prompt, ok := transformPrompts[label]
	if !ok {
		return nil, fmt.Errorf("no transformation prompt for label %s", label)
	}
	content, err := c.complete(ctx, prompt, userMessage(text, "Return the JSON object."))
	if err != nil {
		return nil, err
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decode %s transformation response: %w", label, err)
	}
	return parsed, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(text, instruction string) string {
	return "Post:\n---\n" + text + "\n---\n\n" + instruction
}
