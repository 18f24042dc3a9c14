// Package ai wraps the chat-completion API used for resume analysis and
// job matching.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// JSONSchema describes a structured-output schema.
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// ResponseFormat selects the provider's output mode. Type is "text",
// "json_object" or "json_schema".
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// Request is a chat-completion request.
type Request struct {
	Model          string
	Messages       []Message
	Temperature    *float64
	MaxTokens      *int
	ResponseFormat *ResponseFormat
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the first choice of a chat completion.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Client performs chat completions.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// ProviderError is returned for non-2xx provider responses that were not
// recovered by retrying.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Message     string
	RawResponse []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Temp returns a pointer to a temperature value.
func Temp(v float64) *float64 { return &v }

// Decode unmarshals a completion's content into out. Providers sometimes
// fence JSON in markdown; fences are stripped before decoding.
func Decode(resp *Response, out any) error {
	content := strings.TrimSpace(resp.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), out); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}

	return nil
}
