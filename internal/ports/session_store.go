package ports

import (
	"context"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.ConversationContext, error)
	Save(ctx context.Context, conversation domain.ConversationContext) error
	Delete(ctx context.Context, sessionID string) error
}
