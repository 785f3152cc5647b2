package domain

import (
	"fmt"
	"strings"
	"time"
)

// Identity is supplied by the upstream auth layer for every session.
type Identity struct {
	UserID    string
	CompanyID string
}

func (i Identity) Validate() error {
	if strings.TrimSpace(i.CompanyID) == "" {
		return fmt.Errorf("%w: company id is required", ErrScopeViolation)
	}
	if strings.TrimSpace(i.UserID) == "" {
		return fmt.Errorf("%w: user id is required", ErrScopeViolation)
	}
	return nil
}

// ConversationContext is the per-session state. CompanyID and UserID never change
// after the session starts.
type ConversationContext struct {
	SessionID      string
	CompanyID      string
	UserID         string
	ActiveClientID string
	RecentTurns    *TurnLog
	Memory         *EntityMemory
	Pending        *PendingAction
	Turn           int
	Language       Language
	StartedAt      time.Time
	UpdatedAt      time.Time
}

func NewConversationContext(sessionID string, identity Identity, maxTurns int, now time.Time) ConversationContext {
	return ConversationContext{
		SessionID:   sessionID,
		CompanyID:   identity.CompanyID,
		UserID:      identity.UserID,
		RecentTurns: NewTurnLog(maxTurns),
		Memory:      NewEntityMemory(),
		Language:    LanguageEnglish,
		StartedAt:   now,
		UpdatedAt:   now,
	}
}

func (c ConversationContext) Scope() Scope {
	return Scope{CompanyID: c.CompanyID, ClientID: c.ActiveClientID}
}

func (c ConversationContext) Identity() Identity {
	return Identity{UserID: c.UserID, CompanyID: c.CompanyID}
}

// Clone deep-copies the mutable parts so stored sessions never alias a live one.
func (c ConversationContext) Clone() ConversationContext {
	out := c
	out.RecentTurns = c.RecentTurns.Clone()
	out.Memory = c.Memory.Clone()
	out.Pending = c.Pending.Clone()
	return out
}
