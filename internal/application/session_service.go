package application

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

type SessionService struct {
	store    ports.SessionStore
	clock    ports.Clock
	maxTurns int
}

func NewSessionService(store ports.SessionStore, clock ports.Clock, maxTurns int) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if maxTurns <= 0 {
		maxTurns = domain.DefaultMaxRecentTurns
	}

	return &SessionService{store: store, clock: clock, maxTurns: maxTurns}
}

// ResolveSessionID derives a stable session id so a terminal user resumes the
// same conversation across runs.
func (s *SessionService) ResolveSessionID(identity domain.Identity, label string) string {
	raw := strings.TrimSpace(identity.CompanyID) + "|" + strings.TrimSpace(identity.UserID) + "|" + strings.TrimSpace(label)
	hash := sha1.Sum([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// Start loads the session when it exists for the same identity, otherwise
// creates it. A session owned by someone else is reported as not found.
func (s *SessionService) Start(ctx context.Context, cmd StartSessionCommand) (domain.ConversationContext, error) {
	if err := cmd.Identity.Validate(); err != nil {
		return domain.ConversationContext{}, fmt.Errorf("start session: %w", err)
	}

	sessionID := strings.TrimSpace(cmd.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	existing, err := s.store.Get(ctx, sessionID)
	switch {
	case err == nil:
		if existing.Identity() != cmd.Identity {
			return domain.ConversationContext{}, fmt.Errorf("start session %s: %w", sessionID, domain.ErrSessionNotFound)
		}
		return existing, nil
	case !errors.Is(err, domain.ErrSessionNotFound):
		return domain.ConversationContext{}, fmt.Errorf("get session: %w", err)
	}

	conversation := domain.NewConversationContext(sessionID, cmd.Identity, s.maxTurns, s.clock.Now())
	if err := s.store.Save(ctx, conversation); err != nil {
		return domain.ConversationContext{}, fmt.Errorf("save session: %w", err)
	}
	return conversation, nil
}

func (s *SessionService) Load(ctx context.Context, sessionID string) (domain.ConversationContext, error) {
	conversation, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.ConversationContext{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if conversation.RecentTurns == nil {
		conversation.RecentTurns = domain.NewTurnLog(s.maxTurns)
	}
	if conversation.Memory == nil {
		conversation.Memory = domain.NewEntityMemory()
	}
	return conversation, nil
}

// Authorize loads the session only when identity owns it.
func (s *SessionService) Authorize(ctx context.Context, sessionID string, identity domain.Identity) (domain.ConversationContext, error) {
	conversation, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.ConversationContext{}, err
	}
	if conversation.Identity() != identity {
		return domain.ConversationContext{}, fmt.Errorf("get session %s: %w", sessionID, domain.ErrSessionNotFound)
	}
	return conversation, nil
}

func (s *SessionService) Save(ctx context.Context, conversation domain.ConversationContext) error {
	conversation.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, conversation); err != nil {
		return fmt.Errorf("save session %s: %w", conversation.SessionID, err)
	}
	return nil
}

func (s *SessionService) End(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
