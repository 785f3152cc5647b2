package domain

import (
	"fmt"
	"time"
)

type ActionState string

const (
	ActionIdle      ActionState = "idle"
	ActionProposed  ActionState = "proposed"
	ActionConfirmed ActionState = "confirmed"
	ActionRejected  ActionState = "rejected"
	ActionExpired   ActionState = "expired"
	ActionExecuted  ActionState = "executed"
)

var actionTransitions = map[ActionState][]ActionState{
	ActionProposed:  {ActionConfirmed, ActionRejected, ActionExpired},
	ActionConfirmed: {ActionExecuted},
}

func (s ActionState) Terminal() bool {
	switch s {
	case ActionRejected, ActionExpired, ActionExecuted:
		return true
	default:
		return false
	}
}

// PendingAction is a mutation awaiting explicit confirmation.
type PendingAction struct {
	ID             string
	ToolName       string
	Args           Args
	ClientID       string
	Preview        []string
	CascadePreview []string
	State          ActionState
	ProposedAt     time.Time
	ProposedTurn   int
}

func (p *PendingAction) Transition(to ActionState) error {
	for _, allowed := range actionTransitions[p.State] {
		if allowed == to {
			p.State = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.State, to)
}

// ExpiryPolicy bounds how long a proposal stays answerable.
type ExpiryPolicy struct {
	TTL      time.Duration
	MaxTurns int
}

// Expired reports whether the action has outlived either the time or the turn budget.
func (p PendingAction) Expired(now time.Time, turn int, policy ExpiryPolicy) bool {
	if policy.TTL > 0 && now.Sub(p.ProposedAt) > policy.TTL {
		return true
	}
	if policy.MaxTurns > 0 && turn-p.ProposedTurn > policy.MaxTurns {
		return true
	}
	return false
}

func (p *PendingAction) Clone() *PendingAction {
	if p == nil {
		return nil
	}
	out := *p
	out.Args = p.Args.Clone()
	out.Preview = append([]string(nil), p.Preview...)
	out.CascadePreview = append([]string(nil), p.CascadePreview...)
	return &out
}
