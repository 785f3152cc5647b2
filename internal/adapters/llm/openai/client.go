package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	completionsPath = "/chat/completions"
)

var ErrEmptyCompletion = errors.New("model returned no choices")

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completions endpoint with the tool
// catalog attached as function tools.
type Client struct {
	http  *resty.Client
	model string
}

var _ ports.LanguageModel = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		c.SetAuthToken(cfg.APIKey)
	}

	return &Client{http: c, model: cfg.Model}
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []toolSpec    `json:"tools,omitempty"`
	ToolChoice string        `json:"tool_choice,omitempty"`
}

type chatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []toolCallWire `json:"tool_calls,omitempty"`
}

type toolCallWire struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function functionCallWire `json:"function"`
}

type functionCallWire struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (ports.Completion, error) {
	body := chatRequest{
		Model:    c.model,
		Messages: buildMessages(req),
		Tools:    toolSpecs(req.Tools),
	}
	if len(body.Tools) > 0 {
		body.ToolChoice = "auto"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&body).
		Post(completionsPath)
	if err != nil {
		return ports.Completion{}, fmt.Errorf("chat completion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			return ports.Completion{}, fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return ports.Completion{}, fmt.Errorf("chat completion status %d", resp.StatusCode())
	}

	var decoded chatResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return ports.Completion{}, fmt.Errorf("decode chat completion: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return ports.Completion{}, ErrEmptyCompletion
	}

	message := decoded.Choices[0].Message
	completion := ports.Completion{Text: message.Content}
	if len(message.ToolCalls) > 0 {
		call := message.ToolCalls[0]
		arguments := strings.TrimSpace(call.Function.Arguments)
		if arguments == "" {
			arguments = "{}"
		}
		completion.ToolCall = &ports.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(arguments),
		}
	}
	return completion, nil
}

func buildMessages(req ports.CompletionRequest) []chatMessage {
	messages := make([]chatMessage, 0, 2+2*len(req.History))
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, exchange := range req.History {
		messages = append(messages, historyMessages(exchange)...)
	}
	return append(messages, chatMessage{Role: "user", Content: req.Utterance})
}

func historyMessages(exchange domain.Exchange) []chatMessage {
	var out []chatMessage
	if exchange.User != "" {
		out = append(out, chatMessage{Role: "user", Content: exchange.User})
	}
	if exchange.Assistant != "" {
		out = append(out, chatMessage{Role: "assistant", Content: exchange.Assistant})
	}
	return out
}
