package evaluate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel       = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.3
)

// Model produces the free-text reply for a single-turn instruction.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Claude is a Model backed by the Anthropic Messages API. It makes exactly one request per
// call; the SDK's own retries are turned off.
type Claude struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// ClaudeOption configures a Claude model.
type ClaudeOption func(*Claude) error

// WithClaudeModel overrides the model id.
func WithClaudeModel(model string) ClaudeOption {
	return func(c *Claude) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		c.model = model
		return nil
	}
}

// WithMaxTokens bounds the completion length.
func WithMaxTokens(tokens int64) ClaudeOption {
	return func(c *Claude) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		c.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature, 0.0 to 1.0.
func WithTemperature(temp float64) ClaudeOption {
	return func(c *Claude) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		c.temperature = temp
		return nil
	}
}

// NewClaude builds a Claude model. baseURL may be empty to use the public API.
func NewClaude(apiKey, baseURL string, opts ...ClaudeOption) (*Claude, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	c := &Claude{
		client:      anthropic.NewClient(clientOpts...),
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return c, nil
}

// Complete sends prompt as the only user turn and returns the text of the first content block.
// A reply whose first block is not text yields the empty string.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating message: %w", err)
	}

	if len(message.Content) == 0 || message.Content[0].Type != "text" {
		return "", nil
	}
	return message.Content[0].Text, nil
}
