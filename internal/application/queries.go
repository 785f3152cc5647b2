package application

import "github.com/bnema/weddingflow-assistant/internal/domain"

type ResponseKind string

const (
	ResponseReply         ResponseKind = "reply"
	ResponseClarification ResponseKind = "clarification"
	ResponsePreview       ResponseKind = "preview"
	ResponseResult        ResponseKind = "result"
	ResponseError         ResponseKind = "error"
)

// AssistantResponse is what one user utterance produces.
type AssistantResponse struct {
	Kind     ResponseKind
	Text     string
	Language domain.Language
	Tool     string
	// State is the pending-action state after the turn.
	State    domain.ActionState
	ActionID string
	Preview  []string
	Cascades []string
	Result   *domain.ExecutionResult
}
