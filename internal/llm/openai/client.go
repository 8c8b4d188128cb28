package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Options configures the OpenAI client.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	model string
	http  *resty.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	retries := opts.RetryCount
	if retries < 0 {
		retries = 0
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(opts.APIKey).
		SetRetryCount(retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	client.AddRetryCondition(retryCondition)

	return &Client{model: opts.Model, http: client}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

type apiError struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Rephrase asks the model for an improved version of the input text.
func (c *Client) Rephrase(ctx context.Context, input llm.RephraseInput) (string, error) {
	messages := llm.BuildRephrasePrompt(input)
	body := chatRequest{Model: c.model}
	for _, m := range messages {
		body.Messages = append(body.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	// gpt-5 models reject a custom temperature.
	if !isGPT5(c.model) {
		temp := float32(0.4)
		body.Temperature = &temp
	}

	var parsed chatResponse
	var failure apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&parsed).
		SetError(&failure).
		Post("/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: openai request timeout: %v", llm.ErrProvider, err)
		}
		return "", fmt.Errorf("%w: %v", llm.ErrProvider, err)
	}
	if resp.IsError() {
		msg := strings.TrimSpace(resp.String())
		if failure.Error != nil {
			msg = fmt.Sprintf("%s (%s)", failure.Error.Message, failure.Error.Type)
		}
		return "", fmt.Errorf("%w: openai status %d: %s", llm.ErrProvider, resp.StatusCode(), msg)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: openai response missing choices", llm.ErrProvider)
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: openai response empty content", llm.ErrProvider)
	}

	fields := map[string]any{"model": c.model}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
	return content, nil
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Client = (*Client)(nil)
