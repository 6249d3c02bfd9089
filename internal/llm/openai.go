package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client defines the two generation modes the pipeline stages need: a
// schema-constrained structured completion (extraction, diagnosis) and a
// free-text completion (summarization). Implementations must be safe for
// concurrent use by many in-flight requests.
type Client interface {
	StructuredCompletion(ctx context.Context, prompt string, temperature float32) (string, error)
	Completion(ctx context.Context, prompt string, temperature float32) (string, error)
}

// OpenAIClient calls the OpenAI chat completion API. Structured calls run in
// JSON mode so the provider enforces well-formed JSON; the stage schemas are
// validated separately at the boundary.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs an OpenAI-backed generation client. The timeout
// applies per call on top of any context deadline.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// StructuredCompletion sends the prompt in JSON mode and returns the raw
// JSON text of the first choice.
func (c *OpenAIClient) StructuredCompletion(ctx context.Context, prompt string, temperature float32) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Completion sends the prompt as a plain chat completion and returns the
// assistant's text.
func (c *OpenAIClient) Completion(ctx context.Context, prompt string, temperature float32) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
