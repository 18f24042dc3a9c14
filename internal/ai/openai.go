package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	maxAttempts = 3
	retryDelay  = time.Second
)

// OpenAIClient implements Client against the OpenAI chat-completions API
// via direct HTTP.
type OpenAIClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewOpenAIClient returns a client with defaults applied.
func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}

	return &OpenAIClient{
		BaseURL: url,
		APIKey:  strings.TrimSpace(apiKey),
	}
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Complete sends a chat completion request. Rate-limited and 5xx responses
// are retried up to maxAttempts times with a doubling delay; other failures
// surface immediately as *ProviderError.
func (c *OpenAIClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if req == nil || strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}

	body, err := json.Marshal(&chatCompletionRequest{
		Model:          req.Model,
		Messages:       req.Messages,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: req.ResponseFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	if cancel != nil {
		defer cancel()
	}

	delay := retryDelay

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, retryable, err := c.do(ctx, body)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !retryable || attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
	}

	return nil, lastErr
}

// do performs one attempt. The second return value reports whether the
// failure is worth retrying.
func (c *OpenAIClient) do(ctx context.Context, body []byte) (*Response, bool, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close() //nolint:errcheck // best-effort cleanup

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		retryable := httpResp.StatusCode == http.StatusTooManyRequests ||
			httpResp.StatusCode >= http.StatusInternalServerError

		return nil, retryable, &ProviderError{
			Provider:    "openai",
			StatusCode:  httpResp.StatusCode,
			Message:     strings.TrimSpace(string(respBody)),
			RawResponse: respBody,
		}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, false, fmt.Errorf("response contained no choices")
	}

	return &Response{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
		Usage:   parsed.Usage,
	}, false, nil
}

func (c *OpenAIClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return ctx, nil
	}

	return context.WithTimeout(ctx, c.Timeout)
}
