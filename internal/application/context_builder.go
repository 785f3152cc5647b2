package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const maxTurnTextRunes = 280

type ClientSnapshot struct {
	Ref         domain.EntityRef
	WeddingDate string
	Venue       string
	Budget      float64
	GuestCount  int
}

// PromptContext is the bounded business and conversation state injected into
// every model call.
type PromptContext struct {
	Today        string
	Language     domain.Language
	ActiveClient *ClientSnapshot
	RecentTurns  []domain.Exchange
	Memory       []domain.MemoryEntry
	Pending      *domain.PendingAction
}

type ContextBuilder struct {
	store ports.EntityStore
	clock ports.Clock
}

func NewContextBuilder(store ports.EntityStore, clock ports.Clock) *ContextBuilder {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ContextBuilder{store: store, clock: clock}
}

func (b *ContextBuilder) Build(ctx context.Context, conversation domain.ConversationContext) (PromptContext, error) {
	pc := PromptContext{
		Today:    b.clock.Now().Format(DateLayout),
		Language: conversation.Language,
		Memory:   conversation.Memory.Entries(),
		Pending:  conversation.Pending.Clone(),
	}
	if conversation.RecentTurns != nil {
		pc.RecentTurns = conversation.RecentTurns.Items()
	}

	if conversation.ActiveClientID == "" {
		return pc, nil
	}

	scope := domain.Scope{CompanyID: conversation.CompanyID}
	client, err := b.store.Get(ctx, scope, domain.EntityClient, domain.EntityID(conversation.ActiveClientID))
	if err != nil {
		if errors.Is(err, domain.ErrEntityNotFound) {
			return pc, nil
		}
		return PromptContext{}, fmt.Errorf("load active client: %w", err)
	}

	guests, err := b.store.Query(ctx, scope.WithClient(string(client.ID)), domain.EntityGuest, domain.Filter{})
	if err != nil {
		return PromptContext{}, fmt.Errorf("count active client guests: %w", err)
	}

	pc.ActiveClient = &ClientSnapshot{
		Ref:         client.Ref(),
		WeddingDate: client.String("wedding_date"),
		Venue:       client.String("venue"),
		Budget:      client.Number("budget"),
		GuestCount:  len(guests),
	}
	return pc, nil
}

// FormatContext renders pc as prompt text. Identical input always yields
// identical output.
func FormatContext(pc PromptContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today: %s\n", pc.Today)
	if pc.Language != "" {
		fmt.Fprintf(&b, "User language: %s\n", pc.Language.Name())
	}

	if pc.ActiveClient == nil {
		b.WriteString("Active wedding: none\n")
	} else {
		c := pc.ActiveClient
		fmt.Fprintf(&b, "Active wedding: %s (id %s)", c.Ref.Name, c.Ref.ID)
		if c.WeddingDate != "" {
			fmt.Fprintf(&b, ", date %s", c.WeddingDate)
		}
		if c.Venue != "" {
			fmt.Fprintf(&b, ", venue %s", c.Venue)
		}
		if c.Budget > 0 {
			fmt.Fprintf(&b, ", budget %s", formatAmount(c.Budget))
		}
		fmt.Fprintf(&b, ", %d guests\n", c.GuestCount)
	}

	if len(pc.RecentTurns) > 0 {
		b.WriteString("Recent activity:\n")
		for _, turn := range pc.RecentTurns {
			fmt.Fprintf(&b, "- user: %s\n", truncateRunes(oneLine(turn.User), maxTurnTextRunes))
			fmt.Fprintf(&b, "  assistant: %s\n", truncateRunes(oneLine(turn.Assistant), maxTurnTextRunes))
		}
	}

	if len(pc.Memory) > 0 {
		b.WriteString("Recently referenced:\n")
		for _, entry := range pc.Memory {
			labels := make([]string, 0, len(entry.Entities))
			for _, ref := range entry.Entities {
				labels = append(labels, fmt.Sprintf("%s %s (id %s)", ref.Type, ref.Name, ref.ID))
			}
			fmt.Fprintf(&b, "- %s: %s\n", entry.Role, strings.Join(labels, "; "))
		}
	}

	if pc.Pending != nil && pc.Pending.State == domain.ActionProposed {
		fmt.Fprintf(&b, "Awaiting confirmation: %s\n", pc.Pending.ToolName)
	}

	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
