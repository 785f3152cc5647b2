package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

// SessionStore keeps conversations for the lifetime of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.ConversationContext
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.ConversationContext{}}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.ConversationContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConversationContext{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.sessions[sessionID]
	if !ok {
		return domain.ConversationContext{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}
	return conversation.Clone(), nil
}

func (s *SessionStore) Save(ctx context.Context, conversation domain.ConversationContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[conversation.SessionID] = conversation.Clone()
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
	}
	delete(s.sessions, sessionID)
	return nil
}
