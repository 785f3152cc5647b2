package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
	"github.com/bnema/weddingflow-assistant/internal/ports/mocks"
)

// countingStore records every write that reaches the entity store.
type countingStore struct {
	*memory.EntityStore
	writes atomic.Int64
}

func (s *countingStore) Create(ctx context.Context, scope domain.Scope, entityType domain.EntityType, fields map[string]any) (domain.Entity, error) {
	s.writes.Add(1)
	return s.EntityStore.Create(ctx, scope, entityType, fields)
}

func (s *countingStore) Update(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error) {
	s.writes.Add(1)
	return s.EntityStore.Update(ctx, scope, entityType, id, fields)
}

func (s *countingStore) Delete(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) error {
	s.writes.Add(1)
	return s.EntityStore.Delete(ctx, scope, entityType, id)
}

type controllerFixture struct {
	t          *testing.T
	controller *Controller
	sessions   *SessionService
	store      *countingStore
	model      *mocks.MockLanguageModel
	now        time.Time
}

func newControllerFixture(t *testing.T, cfg ControllerConfig) *controllerFixture {
	t.Helper()

	f := &controllerFixture{t: t, now: fixedNow}
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().RunAndReturn(func() time.Time { return f.now }).Maybe()

	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	f.store = &countingStore{EntityStore: memory.NewEntityStore(clock)}
	f.model = mocks.NewMockLanguageModel(t)
	f.sessions = NewSessionService(memory.NewSessionStore(), clock, 0)
	f.controller = NewController(ControllerDeps{
		Sessions: f.sessions,
		Catalog:  catalog,
		Store:    f.store,
		Model:    f.model,
		Clock:    clock,
		Logger:   zerolog.Nop(),
	}, cfg)
	return f
}

func (f *controllerFixture) start() string {
	f.t.Helper()

	conversation, err := f.controller.StartSession(context.Background(), planner, "")
	require.NoError(f.t, err)
	return conversation.SessionID
}

func (f *controllerFixture) say(sessionID, text string) AssistantResponse {
	f.t.Helper()

	resp, err := f.controller.HandleUserMessage(context.Background(), sessionID, text)
	require.NoError(f.t, err)
	return resp
}

func (f *controllerFixture) expectToolCall(name, args string) {
	f.model.EXPECT().Complete(mockAnyContext(), mock.Anything).Return(ports.Completion{
		ToolCall: &ports.ToolCall{ID: "call-1", Name: name, Arguments: json.RawMessage(args)},
	}, nil).Once()
}

func (f *controllerFixture) expectReply(text string) {
	f.model.EXPECT().Complete(mockAnyContext(), mock.Anything).Return(ports.Completion{Text: text}, nil).Once()
}

func (f *controllerFixture) conversation(sessionID string) domain.ConversationContext {
	f.t.Helper()

	conversation, err := f.sessions.Load(context.Background(), sessionID)
	require.NoError(f.t, err)
	return conversation
}

func (f *controllerFixture) seedClient(fields map[string]any) domain.Entity {
	return seedClient(f.t, f.store.EntityStore, companyA, fields)
}

func (f *controllerFixture) seed(client domain.Entity, entityType domain.EntityType, fields map[string]any) domain.Entity {
	return seedEntity(f.t, f.store.EntityStore, client, entityType, fields)
}

func TestQueryToolRunsImmediately(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun", "budget": 600000.0})
	f.seed(client, domain.EntityBudgetItem, map[string]any{"category": "venue", "estimated": 200000.0, "actual": 200000.0, "paid": 50000.0})
	f.seed(client, domain.EntityBudgetItem, map[string]any{"category": "catering", "estimated": 150000.0, "actual": 0.0, "paid": 20000.0})
	sessionID := f.start()

	f.expectToolCall("get_budget_overview", `{}`)
	resp := f.say(sessionID, "How much have we spent so far?")

	assert.Equal(t, ResponseResult, resp.Kind)
	assert.Equal(t, domain.ActionExecuted, resp.State)
	assert.Equal(t, "get_budget_overview", resp.Tool)
	assert.Empty(t, resp.ActionID)
	assert.Contains(t, resp.Text, "spent so far: 70,000")
	assert.Contains(t, resp.Text, "remaining: 530,000")
	assert.Zero(t, f.store.writes.Load())

	conversation := f.conversation(sessionID)
	assert.Nil(t, conversation.Pending)
	assert.Equal(t, string(client.ID), conversation.ActiveClientID)
}

func TestMutationWaitsForConfirmation(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"name": "Raj Kumar", "needs_hotel": true}`)
	proposed := f.say(sessionID, "Add Raj Kumar to the wedding, he needs a hotel")

	assert.Equal(t, ResponsePreview, proposed.Kind)
	assert.Equal(t, domain.ActionProposed, proposed.State)
	assert.NotEmpty(t, proposed.ActionID)
	assert.Equal(t, []string{"name: Raj Kumar", "needs_hotel: true"}, proposed.Preview)
	assert.Equal(t, []string{EffectGuestHotel}, proposed.Cascades)
	assert.Equal(t, "Please review this change (add_guest):\n"+
		"- name: Raj Kumar\n"+
		"- needs_hotel: true\n"+
		"This will also:\n"+
		"- will create hotel booking when hotel details are provided\n"+
		"Shall I go ahead? Reply yes to confirm or no to cancel.", proposed.Text)
	assert.Zero(t, f.store.writes.Load())
	assert.Empty(t, queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest))

	done := f.say(sessionID, "yes")

	assert.Equal(t, ResponseResult, done.Kind)
	assert.Equal(t, domain.ActionExecuted, done.State)
	assert.Equal(t, proposed.ActionID, done.ActionID)
	assert.Equal(t, "Done.\n- guest: Raj Kumar\n- hotel booking: waiting for hotel details", done.Text)

	guests := queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest)
	require.Len(t, guests, 1)
	assert.True(t, guests[0].Bool("needs_hotel"))

	conversation := f.conversation(sessionID)
	assert.Nil(t, conversation.Pending)
	last, ok := conversation.Memory.Recall(domain.RoleLastGuest)
	require.True(t, ok)
	assert.Equal(t, guests[0].ID, last.ID)
}

func TestRejectedMutationWritesNothing(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	f.seed(client, domain.EntityTimelineItem, map[string]any{"title": "Ceremony", "start_time": "16:00", "date": "2026-12-12"})
	f.seed(client, domain.EntityTimelineItem, map[string]any{"title": "Reception", "start_time": "19:30", "date": "2026-12-12"})
	sessionID := f.start()

	f.expectToolCall("shift_timeline", `{"minutes": 30}`)
	proposed := f.say(sessionID, "Push everything back 30 minutes")

	require.Equal(t, ResponsePreview, proposed.Kind)
	assert.Equal(t, []string{"minutes: 30", "Ceremony: 16:00 → 16:30", "Reception: 19:30 → 20:00"}, proposed.Preview)

	rejected := f.say(sessionID, "no")

	assert.Equal(t, ResponseReply, rejected.Kind)
	assert.Equal(t, domain.ActionRejected, rejected.State)
	assert.Equal(t, messagesFor(domain.LanguageEnglish).Cancelled, rejected.Text)
	assert.Zero(t, f.store.writes.Load())
	for _, item := range queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityTimelineItem) {
		assert.Contains(t, []string{"16:00", "19:30"}, item.String("start_time"))
	}
	assert.Nil(t, f.conversation(sessionID).Pending)
}

func TestPronounResolvesFromMemory(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	raj := f.seed(client, domain.EntityGuest, map[string]any{"name": "Raj Kumar", "rsvp_status": "pending"})
	sessionID := f.start()

	f.expectToolCall("search_guests", `{"query": "Raj Kumar"}`)
	found := f.say(sessionID, "Is Raj Kumar on the list?")
	require.Equal(t, ResponseResult, found.Kind)

	f.expectToolCall("update_rsvp", `{"guest": "their", "rsvp_status": "confirmed"}`)
	proposed := f.say(sessionID, "update their RSVP to confirmed")

	require.Equal(t, ResponsePreview, proposed.Kind)
	assert.Contains(t, proposed.Preview, "Raj Kumar: pending → confirmed")
	pending := f.conversation(sessionID).Pending
	require.NotNil(t, pending)
	assert.Equal(t, raj.ID, pending.Args.Entity("guest").ID)

	f.say(sessionID, "yes")

	updated, err := f.store.Get(context.Background(), scopeOf(client), domain.EntityGuest, raj.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.String("rsvp_status"))
}

func TestAmbiguousReferenceAsksInsteadOfGuessing(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	f.seed(client, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})
	f.seed(client, domain.EntityGuest, map[string]any{"name": "Raj Kapoor"})
	sessionID := f.start()

	f.expectToolCall("update_rsvp", `{"guest": "Raj", "rsvp_status": "confirmed"}`)
	resp := f.say(sessionID, "Raj is coming")

	assert.Equal(t, ResponseClarification, resp.Kind)
	assert.Equal(t, domain.ActionIdle, resp.State)
	assert.Equal(t, `I found more than one match for "Raj": Raj Kumar, Raj Kapoor. Which one do you mean?`, resp.Text)
	assert.Nil(t, f.conversation(sessionID).Pending)
	assert.Zero(t, f.store.writes.Load())
}

func TestExpiredProposalIsNeverExecuted(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{Expiry: domain.ExpiryPolicy{TTL: 10 * time.Minute}})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
	require.Equal(t, ResponsePreview, f.say(sessionID, "add Raj Kumar").Kind)

	f.now = fixedNow.Add(11 * time.Minute)
	expired := f.say(sessionID, "yes")

	assert.Equal(t, ResponseError, expired.Kind)
	assert.Equal(t, domain.ActionExpired, expired.State)
	assert.Equal(t, "add_guest", expired.Tool)
	assert.Equal(t, messagesFor(domain.LanguageEnglish).Expired, expired.Text)

	f.expectReply("There is nothing waiting for your confirmation.")
	later := f.say(sessionID, "yes")

	assert.Equal(t, ResponseReply, later.Kind)
	assert.Zero(t, f.store.writes.Load())
	assert.Empty(t, queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest))
}

func TestProposalExpiresAfterTurnBudget(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{Expiry: domain.ExpiryPolicy{MaxTurns: 1}})
	f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
	proposed := f.say(sessionID, "add Raj Kumar")
	require.Equal(t, ResponsePreview, proposed.Kind)

	held := f.say(sessionID, "hmm")
	assert.Equal(t, ResponsePreview, held.Kind)
	assert.Equal(t, proposed.ActionID, held.ActionID)

	f.expectToolCall("list_clients", `{}`)
	resp := f.say(sessionID, "list my weddings")

	assert.Equal(t, ResponseResult, resp.Kind)
	assert.Equal(t, "list_clients", resp.Tool)
	assert.NotContains(t, resp.Text, messagesFor(domain.LanguageEnglish).Superseded)
	assert.Nil(t, f.conversation(sessionID).Pending)
	assert.Zero(t, f.store.writes.Load())
}

func TestHoldKeepsProposalOpen(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
	proposed := f.say(sessionID, "add Raj Kumar")

	held := f.say(sessionID, "wait, let me think")
	assert.Equal(t, ResponsePreview, held.Kind)
	assert.Equal(t, domain.ActionProposed, held.State)
	assert.Equal(t, proposed.ActionID, held.ActionID)
	assert.True(t, strings.HasPrefix(held.Text, messagesFor(domain.LanguageEnglish).Hold+"\n"))

	done := f.say(sessionID, "ok go ahead")
	assert.Equal(t, ResponseResult, done.Kind)
	assert.Len(t, queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest), 1)
}

func TestUnclearReplySupersedesProposal(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
	first := f.say(sessionID, "add Raj Kumar")

	f.expectToolCall("add_guest", `{"name": "Meera Shah"}`)
	second := f.say(sessionID, "actually add Meera Shah instead")

	assert.Equal(t, ResponsePreview, second.Kind)
	assert.NotEqual(t, first.ActionID, second.ActionID)
	assert.True(t, strings.HasPrefix(second.Text, messagesFor(domain.LanguageEnglish).Superseded+"\n"))

	f.say(sessionID, "yes")

	guests := queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest)
	require.Len(t, guests, 1)
	assert.Equal(t, "Meera Shah", guests[0].Name)
}

func TestCompoundConfirmationIsNotExecutedSilently(t *testing.T) {
	for _, reply := range []string{"yes, add Meera too", "yes and also add Meera"} {
		t.Run(reply, func(t *testing.T) {
			f := newControllerFixture(t, ControllerConfig{})
			client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
			sessionID := f.start()

			f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
			first := f.say(sessionID, "add Raj Kumar")
			require.Equal(t, ResponsePreview, first.Kind)

			f.model.EXPECT().Complete(mockAnyContext(), mock.MatchedBy(func(req ports.CompletionRequest) bool {
				return req.Utterance == reply
			})).Return(ports.Completion{
				ToolCall: &ports.ToolCall{ID: "call-2", Name: "add_guest", Arguments: json.RawMessage(`{"name": "Meera Shah"}`)},
			}, nil).Once()
			second := f.say(sessionID, reply)

			assert.Equal(t, ResponsePreview, second.Kind)
			assert.NotEqual(t, first.ActionID, second.ActionID)
			assert.True(t, strings.HasPrefix(second.Text, messagesFor(domain.LanguageEnglish).Superseded+"\n"))
			assert.Zero(t, f.store.writes.Load())
			assert.Empty(t, queryAll(t, f.store.EntityStore, scopeOf(client), domain.EntityGuest))
		})
	}
}

func TestCreateClientListsCascadeRecords(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()

	f.expectToolCall("create_client", `{"partner1": "Priya", "partner2": "Arjun", "wedding_date": "2026-12-12", "budget": 600000}`)
	proposed := f.say(sessionID, "New wedding: Priya and Arjun on 12 December, budget 6 lakh")

	require.Equal(t, ResponsePreview, proposed.Kind)
	assert.Equal(t, []string{"partner1: Priya", "partner2: Arjun", "wedding_date: 2026-12-12", "budget: 600000"}, proposed.Preview)
	assert.Equal(t, []string{EffectDefaultEvent, EffectBudgetScaffold}, proposed.Cascades)

	done := f.say(sessionID, "yes")

	require.Equal(t, ResponseResult, done.Kind)
	assert.Equal(t, []string{
		"event Wedding",
		"budget item venue",
		"budget item catering",
		"budget item decor",
		"budget item photography",
		"budget item attire",
		"budget item entertainment",
	}, done.Cascades)
	require.NotNil(t, done.Result)
	for _, record := range done.Result.Cascades {
		assert.Contains(t, proposed.Cascades, record.Effect)
	}
	assert.Equal(t, string(done.Result.Primary.ID), f.conversation(sessionID).ActiveClientID)
	assert.Equal(t, int64(8), f.store.writes.Load())
}

func TestClientScopedToolAsksWhichWedding(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	priya := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	f.seedClient(map[string]any{"partner1": "Ananya", "partner2": "Rohan"})
	sessionID := f.start()

	f.expectToolCall("get_guest_stats", `{}`)
	asked := f.say(sessionID, "How many guests have confirmed?")
	assert.Equal(t, ResponseClarification, asked.Kind)
	assert.Equal(t, "Which wedding do you mean? Ananya & Rohan, Priya & Arjun", asked.Text)

	f.expectToolCall("switch_client", `{"client": "Priya"}`)
	switched := f.say(sessionID, "Priya's")
	assert.Equal(t, ResponseResult, switched.Kind)
	assert.Equal(t, "active wedding: Priya & Arjun", switched.Text)
	assert.Equal(t, string(priya.ID), f.conversation(sessionID).ActiveClientID)
}

func TestNoClientsSuggestsCreatingOne(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()

	f.expectToolCall("list_vendors", `{}`)
	resp := f.say(sessionID, "Which vendors do we have?")

	assert.Equal(t, ResponseClarification, resp.Kind)
	assert.Equal(t, messagesFor(domain.LanguageEnglish).NoClients, resp.Text)
}

func TestOtherTenantsRecordsStayInvisible(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	foreignClient := seedClient(t, f.store.EntityStore, companyB, map[string]any{"partner1": "Sara", "partner2": "Dev"})
	foreignGuest := seedEntity(t, f.store.EntityStore, foreignClient, domain.EntityGuest, map[string]any{"name": "Raj Kumar", "rsvp_status": "pending"})
	sessionID := f.start()

	f.expectToolCall("update_rsvp", `{"guest": "Raj Kumar", "rsvp_status": "confirmed"}`)
	byName := f.say(sessionID, "Raj Kumar confirmed")
	assert.Equal(t, ResponseClarification, byName.Kind)
	assert.Equal(t, `I couldn't find any guest matching "Raj Kumar". Could you check the name?`, byName.Text)

	f.expectToolCall("get_guest_stats", fmt.Sprintf(`{"client": %q}`, foreignClient.ID))
	byID := f.say(sessionID, "stats for "+string(foreignClient.ID))
	assert.Equal(t, ResponseClarification, byID.Kind)

	unchanged, err := f.store.Get(context.Background(), scopeOf(foreignClient), domain.EntityGuest, foreignGuest.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", unchanged.String("rsvp_status"))
	conversation := f.conversation(sessionID)
	assert.False(t, conversation.Memory.Contains(foreignGuest.ID))
	assert.False(t, conversation.Memory.Contains(foreignClient.ID))
	assert.Zero(t, f.store.writes.Load())
}

func TestMissingArgumentBecomesQuestion(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("add_guest", `{"side": "bride"}`)
	resp := f.say(sessionID, "add a guest from the bride's side")

	assert.Equal(t, ResponseClarification, resp.Kind)
	assert.Equal(t, "What should I use for name?", resp.Text)

	f.expectToolCall("update_rsvp", `{"rsvp_status": "confirmed"}`)
	resp = f.say(sessionID, "mark as confirmed")
	assert.Equal(t, "Which guest do you mean?", resp.Text)
}

func TestUnresolvedPronounAsksForName(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()

	f.expectToolCall("remove_guest", `{"guest": "him"}`)
	resp := f.say(sessionID, "remove him")

	assert.Equal(t, ResponseClarification, resp.Kind)
	assert.Equal(t, `I'm not sure which guest "him" refers to. Could you give me the name?`, resp.Text)
}

func TestCollaboratorFailuresBecomeResponses(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()

	f.model.EXPECT().Complete(mockAnyContext(), mock.Anything).Return(ports.Completion{}, errors.New("upstream 503")).Once()
	failed := f.say(sessionID, "hello")
	assert.Equal(t, ResponseError, failed.Kind)
	assert.Equal(t, messagesFor(domain.LanguageEnglish).Unavailable, failed.Text)

	f.expectToolCall("delete_everything", `{}`)
	unknown := f.say(sessionID, "wipe it all")
	assert.Equal(t, ResponseError, unknown.Kind)
	assert.Equal(t, messagesFor(domain.LanguageEnglish).UnknownTool, unknown.Text)

	f.expectReply("   ")
	empty := f.say(sessionID, "hmm?")
	assert.Equal(t, ResponseError, empty.Kind)

	assert.Equal(t, 3, f.conversation(sessionID).RecentTurns.Len())
}

func TestExecutionFailureAfterConfirmation(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	client := f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	raj := f.seed(client, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})
	sessionID := f.start()

	f.expectToolCall("update_rsvp", `{"guest": "Raj Kumar", "rsvp_status": "declined"}`)
	proposed := f.say(sessionID, "Raj Kumar can't make it")
	require.Equal(t, ResponsePreview, proposed.Kind)

	require.NoError(t, f.store.EntityStore.Delete(context.Background(), scopeOf(client), domain.EntityGuest, raj.ID))
	resp := f.say(sessionID, "yes")

	assert.Equal(t, ResponseError, resp.Kind)
	assert.Equal(t, "update_rsvp", resp.Tool)
	assert.Equal(t, proposed.ActionID, resp.ActionID)
	assert.Contains(t, resp.Text, messagesFor(domain.LanguageEnglish).Retry)
	assert.Nil(t, f.conversation(sessionID).Pending)
}

func TestRepliesFollowUserLanguage(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	f.seedClient(map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	sessionID := f.start()
	spanish := messagesFor(domain.LanguageSpanish)

	f.expectToolCall("add_guest", `{"name": "Raj Kumar"}`)
	proposed := f.say(sessionID, "Añade a Raj Kumar a la boda")

	assert.Equal(t, domain.LanguageSpanish, proposed.Language)
	assert.Contains(t, proposed.Text, fmt.Sprintf(spanish.PreviewIntro, "add_guest"))
	assert.Contains(t, proposed.Text, spanish.Confirm)
	assert.Contains(t, proposed.Text, "- nombre: Raj Kumar")
	assert.NotContains(t, proposed.Text, "name:")
	assert.Equal(t, []string{"name: Raj Kumar"}, proposed.Preview)

	done := f.say(sessionID, "sí")
	assert.Equal(t, ResponseResult, done.Kind)
	assert.True(t, strings.HasPrefix(done.Text, spanish.Done))
	assert.Contains(t, done.Text, "- invitado: Raj Kumar")

	f.expectToolCall("update_rsvp", `{"rsvp_status": "confirmed"}`)
	question := f.say(sessionID, "Añade la confirmación")
	assert.Equal(t, ResponseClarification, question.Kind)
	assert.Equal(t, fmt.Sprintf(spanish.MissingEntity, "invitado"), question.Text)
}

func TestModelSeesHistoryAndContext(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()

	f.expectReply("Hello! How can I help with your weddings?")
	f.say(sessionID, "hello")

	f.model.EXPECT().Complete(mockAnyContext(), mock.MatchedBy(func(req ports.CompletionRequest) bool {
		return len(req.History) == 1 &&
			req.History[0].User == "hello" &&
			req.Utterance == "what can you do?" &&
			len(req.Tools) == len(DefaultToolDefinitions()) &&
			strings.Contains(req.SystemPrompt, "Today: 2026-03-02") &&
			strings.Contains(req.SystemPrompt, "Active wedding: none")
	})).Return(ports.Completion{Text: "I can manage guests, vendors and budgets."}, nil).Once()
	resp := f.say(sessionID, "what can you do?")

	assert.Equal(t, ResponseReply, resp.Kind)
	assert.Equal(t, domain.ActionIdle, resp.State)
}

func TestUnknownSession(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})

	_, err := f.controller.HandleUserMessage(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMessagesOfOneSessionAreSerialized(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()
	const count = 5

	f.model.EXPECT().Complete(mockAnyContext(), mock.Anything).Return(ports.Completion{Text: "Noted."}, nil).Times(count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.controller.HandleUserMessage(context.Background(), sessionID, fmt.Sprintf("note %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	conversation := f.conversation(sessionID)
	assert.Equal(t, count, conversation.Turn)
	assert.Equal(t, count, conversation.RecentTurns.Len())
}

func TestEndSessionForgetsConversation(t *testing.T) {
	f := newControllerFixture(t, ControllerConfig{})
	sessionID := f.start()

	require.NoError(t, f.controller.EndSession(context.Background(), sessionID))
	require.NoError(t, f.controller.Authorize(context.Background(), f.start(), planner))

	err := f.controller.Authorize(context.Background(), sessionID, planner)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
