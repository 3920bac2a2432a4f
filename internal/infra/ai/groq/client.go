package groq

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/resume-insight/internal/domain/analysis"
)

// Groq exposes an OpenAI-compatible API, so the stock client works with a
// swapped base URL.
const BaseURL = "https://api.groq.com/openai/v1"

const maxTokens = 2048

type Client struct {
	api         *openai.Client
	model       string
	fallbacks   []string
	temperature float32
	topP        float32
	maxRetries  int
}

// NewClient builds a Groq completion client. An empty apiKey yields a
// client whose calls fail with analysis.ErrNotConfigured, so the server
// can still boot and report its state on /health.
func NewClient(apiKey, model string, fallbacks []string, temperature, topP float32, maxRetries int) *Client {
	c := &Client{
		model:       model,
		fallbacks:   fallbacks,
		temperature: temperature,
		topP:        topP,
		maxRetries:  maxRetries,
	}
	if maxRetries <= 0 {
		c.maxRetries = 3
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = BaseURL
		c.api = openai.NewClientWithConfig(cfg)
	}
	return c
}

// Complete sends the prompt and returns the model reply text. It walks the
// candidate model list (primary first, then fallbacks) retrying each up to
// maxRetries times; a model that is blocked or unknown is abandoned
// immediately in favor of the next candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.api == nil {
		return "", analysis.ErrNotConfigured
	}

	candidates := c.candidates()
	var lastErr error

	for _, model := range candidates {
		for attempt := 1; attempt <= c.maxRetries; attempt++ {
			resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       model,
				MaxTokens:   maxTokens,
				Temperature: c.temperature,
				TopP:        c.topP,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleUser, Content: prompt},
				},
			})
			if err != nil {
				lastErr = err
				if isModelBlocked(err) {
					break
				}
				continue
			}
			if len(resp.Choices) == 0 {
				lastErr = fmt.Errorf("model %s returned no choices", model)
				continue
			}
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts across models %v: %v",
		analysis.ErrProviderExhausted, c.maxRetries, candidates, lastErr)
}

// candidates returns the primary model followed by fallbacks, deduplicated.
func (c *Client) candidates() []string {
	out := []string{c.model}
	for _, m := range c.fallbacks {
		if m != c.model {
			out = append(out, m)
		}
	}
	return out
}

// isModelBlocked detects the error class where a model is blocked for the
// project or does not exist; retrying the same model cannot help.
func isModelBlocked(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "model_permission_blocked_project") ||
		strings.Contains(msg, "blocked at the project level") ||
		strings.Contains(msg, "model_not_found")
}
