package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type CompletionRequest struct {
	SystemPrompt string
	Tools        []domain.ToolDefinition
	History      []domain.Exchange
	Utterance    string
}

// ToolCall is the model's structured request to invoke one catalog tool.
// Arguments are left raw; validation happens against the catalog.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

type Completion struct {
	Text     string
	ToolCall *ToolCall
}

type LanguageModel interface {
	Complete(ctx context.Context, request CompletionRequest) (Completion, error)
}
