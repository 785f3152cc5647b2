package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	DefaultPendingTTL      = 10 * time.Minute
	DefaultPendingMaxTurns = 3
)

type ControllerDeps struct {
	Sessions *SessionService
	Catalog  *Catalog
	Store    ports.EntityStore
	Model    ports.LanguageModel
	Clock    ports.Clock
	Logger   zerolog.Logger
}

type ControllerConfig struct {
	Expiry   domain.ExpiryPolicy
	Resolver ResolverOptions
}

// Controller runs the dialogue: it calls the model, applies the
// query/mutation policy and drives each pending action to a terminal state.
type Controller struct {
	sessions *SessionService
	catalog  *Catalog
	store    ports.EntityStore
	model    ports.LanguageModel
	clock    ports.Clock
	logger   zerolog.Logger
	expiry   domain.ExpiryPolicy

	resolver *Resolver
	binder   *ArgumentBinder
	executor *Executor
	builder  *ContextBuilder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewController(deps ControllerDeps, cfg ControllerConfig) *Controller {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cfg.Expiry.TTL <= 0 && cfg.Expiry.MaxTurns <= 0 {
		cfg.Expiry = domain.ExpiryPolicy{TTL: DefaultPendingTTL, MaxTurns: DefaultPendingMaxTurns}
	}

	return &Controller{
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
		store:    deps.Store,
		model:    deps.Model,
		clock:    clock,
		logger:   deps.Logger,
		expiry:   cfg.Expiry,
		resolver: NewResolver(deps.Store, cfg.Resolver),
		binder:   NewArgumentBinder(),
		executor: NewExecutor(deps.Store, deps.Catalog, clock),
		builder:  NewContextBuilder(deps.Store, clock),
		locks:    map[string]*sync.Mutex{},
	}
}

// turn is the state of one utterance being handled.
type turn struct {
	conv  *domain.ConversationContext
	text  string
	now   time.Time
	msg   messages
	notes []string
}

func (c *Controller) StartSession(ctx context.Context, identity domain.Identity, sessionID string) (domain.ConversationContext, error) {
	return c.sessions.Start(ctx, StartSessionCommand{SessionID: sessionID, Identity: identity})
}

// Authorize reports domain.ErrSessionNotFound unless identity owns the session.
func (c *Controller) Authorize(ctx context.Context, sessionID string, identity domain.Identity) error {
	_, err := c.sessions.Authorize(ctx, sessionID, identity)
	return err
}

func (c *Controller) Tools() []domain.ToolDefinition {
	return c.catalog.List()
}

func (c *Controller) EndSession(ctx context.Context, sessionID string) error {
	unlock := c.lockSession(sessionID)
	defer unlock()

	if err := c.sessions.End(ctx, sessionID); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.locks, sessionID)
	c.mu.Unlock()
	return nil
}

// HandleUserMessage processes one utterance. Utterances of one session are
// handled strictly in order. Only an unknown session or a failure to persist
// the session is returned as an error; everything else becomes a response.
func (c *Controller) HandleUserMessage(ctx context.Context, sessionID, text string) (AssistantResponse, error) {
	unlock := c.lockSession(sessionID)
	defer unlock()

	conversation, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return AssistantResponse{}, err
	}

	conversation.Turn++
	conversation.Language = DetectLanguage(text, conversation.Language)
	t := &turn{
		conv: &conversation,
		text: strings.TrimSpace(text),
		now:  c.clock.Now(),
		msg:  messagesFor(conversation.Language),
	}

	resp := c.respond(ctx, t)
	if len(t.notes) > 0 {
		resp.Text = strings.Join(append(t.notes, resp.Text), "\n")
	}
	resp.Language = conversation.Language
	if resp.State == "" {
		resp.State = domain.ActionIdle
	}

	conversation.RecentTurns.Append(domain.Exchange{User: t.text, Assistant: resp.Text, At: t.now})
	if err := c.sessions.Save(ctx, conversation); err != nil {
		c.logger.Error().Stack().Err(err).Str("session_id", sessionID).Msg("failed to save session")
		return AssistantResponse{}, err
	}

	c.logger.Debug().
		Str("session_id", sessionID).
		Int("turn", conversation.Turn).
		Str("state", string(resp.State)).
		Str("tool", resp.Tool).
		Str("kind", string(resp.Kind)).
		Str("language", string(resp.Language)).
		Msg("turn handled")
	return resp, nil
}

func (c *Controller) lockSession(sessionID string) func() {
	c.mu.Lock()
	lock, ok := c.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[sessionID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (c *Controller) respond(ctx context.Context, t *turn) AssistantResponse {
	pending := t.conv.Pending
	if pending == nil || pending.State != domain.ActionProposed {
		t.conv.Pending = nil
		return c.handleRequest(ctx, t)
	}

	reply := ClassifyReply(t.text)
	if pending.Expired(t.now, t.conv.Turn, c.expiry) {
		c.settle(t, domain.ActionExpired)
		if reply == ReplyAffirmative || reply == ReplyNegative {
			return c.recover(t, "", &domain.ExpiredActionError{ToolName: pending.ToolName})
		}
		return c.handleRequest(ctx, t)
	}

	switch reply {
	case ReplyAffirmative:
		return c.confirm(ctx, t, pending)
	case ReplyNegative:
		c.settle(t, domain.ActionRejected)
		return AssistantResponse{Kind: ResponseReply, Text: t.msg.Cancelled, Tool: pending.ToolName, State: domain.ActionRejected}
	case ReplyHold:
		resp := c.previewResponse(t, pending)
		resp.Text = t.msg.Hold + "\n" + resp.Text
		return resp
	default:
		c.settle(t, domain.ActionRejected)
		t.notes = append(t.notes, t.msg.Superseded)
		return c.handleRequest(ctx, t)
	}
}

// settle moves the open action to a terminal state and clears it.
func (c *Controller) settle(t *turn, state domain.ActionState) {
	pending := t.conv.Pending
	if err := pending.Transition(state); err != nil {
		c.logger.Warn().Err(err).Str("session_id", t.conv.SessionID).Msg("pending action transition rejected")
	}
	c.logger.Debug().Str("session_id", t.conv.SessionID).Str("tool", pending.ToolName).Str("state", string(state)).Msg("pending action settled")
	t.conv.Pending = nil
}

func (c *Controller) handleRequest(ctx context.Context, t *turn) AssistantResponse {
	pc, err := c.builder.Build(ctx, *t.conv)
	if err != nil {
		return c.unavailable(t, err)
	}

	completion, err := c.model.Complete(ctx, ports.CompletionRequest{
		SystemPrompt: BuildSystemPrompt(c.catalog, FormatContext(pc), t.conv.Language),
		Tools:        c.catalog.List(),
		History:      t.conv.RecentTurns.Items(),
		Utterance:    t.text,
	})
	if err != nil {
		return c.unavailable(t, fmt.Errorf("complete utterance: %w", err))
	}

	if completion.ToolCall == nil {
		text := strings.TrimSpace(completion.Text)
		if text == "" {
			return AssistantResponse{Kind: ResponseError, Text: t.msg.UnknownTool}
		}
		return AssistantResponse{Kind: ResponseReply, Text: text}
	}
	return c.handleToolCall(ctx, t, *completion.ToolCall)
}

func (c *Controller) handleToolCall(ctx context.Context, t *turn, call ports.ToolCall) AssistantResponse {
	def, err := c.catalog.Get(call.Name)
	if err != nil {
		return c.recover(t, call.Name, err)
	}

	raw, err := DecodeArguments(call.Arguments)
	if err != nil {
		c.logger.Warn().Err(err).Str("tool", call.Name).Msg("model returned malformed tool arguments")
		return AssistantResponse{Kind: ResponseError, Text: t.msg.UnknownTool, Tool: def.Name}
	}

	args, err := c.binder.Bind(def, raw, t.now)
	if err != nil {
		return c.recover(t, def.Name, err)
	}
	scope, err := c.resolveScope(ctx, t, def, args)
	if err != nil {
		return c.recover(t, def.Name, err)
	}
	if err := c.resolveReferences(ctx, t, def, args, scope); err != nil {
		return c.recover(t, def.Name, err)
	}
	if err := c.binder.CheckRequired(def, args); err != nil {
		return c.recover(t, def.Name, err)
	}

	if !def.Kind.RequiresConfirmation() {
		return c.runQuery(ctx, t, def, args, scope)
	}
	return c.propose(ctx, t, def, args, scope)
}

func (c *Controller) runQuery(ctx context.Context, t *turn, def domain.ToolDefinition, args domain.Args, scope domain.Scope) AssistantResponse {
	result, err := c.executor.Execute(ctx, def.Name, args, scope)
	if err != nil {
		return c.recover(t, def.Name, err)
	}
	c.fold(t, result)

	text := t.msg.NoResults
	if len(result.Lines) > 0 {
		text = strings.Join(result.Lines, "\n")
	}
	return AssistantResponse{Kind: ResponseResult, Text: text, Tool: def.Name, State: domain.ActionExecuted, Result: &result}
}

func (c *Controller) propose(ctx context.Context, t *turn, def domain.ToolDefinition, args domain.Args, scope domain.Scope) AssistantResponse {
	preview, err := c.executor.Preview(ctx, def.Name, args, scope)
	if err != nil {
		return c.recover(t, def.Name, err)
	}

	action := &domain.PendingAction{
		ID:             uuid.NewString(),
		ToolName:       def.Name,
		Args:           args,
		ClientID:       scope.ClientID,
		Preview:        preview,
		CascadePreview: append([]string(nil), def.CascadeEffects...),
		State:          domain.ActionProposed,
		ProposedAt:     t.now,
		ProposedTurn:   t.conv.Turn,
	}
	t.conv.Pending = action
	return c.previewResponse(t, action)
}

func (c *Controller) previewResponse(t *turn, action *domain.PendingAction) AssistantResponse {
	var b strings.Builder
	fmt.Fprintf(&b, t.msg.PreviewIntro, action.ToolName)
	for _, line := range c.localizePreview(t, action) {
		b.WriteString("\n- " + line)
	}
	if len(action.CascadePreview) > 0 {
		b.WriteString("\n" + t.msg.AlsoWill)
		for _, effect := range action.CascadePreview {
			b.WriteString("\n- " + effect)
		}
	}
	b.WriteString("\n" + t.msg.Confirm)

	return AssistantResponse{
		Kind:     ResponsePreview,
		Text:     b.String(),
		Tool:     action.ToolName,
		State:    action.State,
		ActionID: action.ID,
		Preview:  append([]string(nil), action.Preview...),
		Cascades: append([]string(nil), action.CascadePreview...),
	}
}

// localizePreview relabels the leading argument lines of a preview. The
// stored preview keeps parameter names.
func (c *Controller) localizePreview(t *turn, action *domain.PendingAction) []string {
	lines := append([]string(nil), action.Preview...)
	def, err := c.catalog.Get(action.ToolName)
	if err != nil {
		return lines
	}
	i := 0
	for _, param := range def.Params {
		if param.Name == "client" || !action.Args.Has(param.Name) {
			continue
		}
		if i >= len(lines) {
			break
		}
		lines[i] = t.msg.argumentLine(param.Name, lines[i])
		i++
	}
	return lines
}

func (c *Controller) confirm(ctx context.Context, t *turn, pending *domain.PendingAction) AssistantResponse {
	if err := pending.Transition(domain.ActionConfirmed); err != nil {
		return c.unavailable(t, err)
	}
	t.conv.Pending = nil

	scope := domain.Scope{CompanyID: t.conv.CompanyID, ClientID: pending.ClientID}
	result, err := c.executor.Execute(ctx, pending.ToolName, pending.Args, scope)
	if err != nil {
		resp := c.recover(t, pending.ToolName, err)
		resp.ActionID = pending.ID
		return resp
	}
	if err := pending.Transition(domain.ActionExecuted); err != nil {
		c.logger.Warn().Err(err).Str("session_id", t.conv.SessionID).Msg("pending action transition rejected")
	}
	c.fold(t, result)

	var b strings.Builder
	b.WriteString(t.msg.Done)
	for _, line := range result.Lines {
		b.WriteString("\n- " + t.msg.resultLine(line))
	}
	var cascades []string
	if len(result.Cascades) > 0 {
		b.WriteString("\n" + t.msg.AlsoCreated)
		for _, record := range result.Cascades {
			line := fmt.Sprintf("%s %s", t.msg.entity(record.Entity.Type), record.Entity.Label())
			cascades = append(cascades, line)
			b.WriteString("\n- " + line)
		}
	}

	return AssistantResponse{
		Kind:     ResponseResult,
		Text:     b.String(),
		Tool:     pending.ToolName,
		State:    domain.ActionExecuted,
		ActionID: pending.ID,
		Cascades: cascades,
		Result:   &result,
	}
}

// fold writes what a tool touched into memory. The primary record is
// remembered last so singular pronouns point at it.
func (c *Controller) fold(t *turn, result domain.ExecutionResult) {
	memory := t.conv.Memory
	for _, record := range result.Cascades {
		memory.RememberEntity(record.Entity)
	}

	switch {
	case result.Plural && len(result.Affected) > 1:
		memory.RememberGroup(result.Affected[0].Type, result.Affected)
	case len(result.Affected) == 1:
		memory.RememberEntity(result.Affected[0])
	}
	if result.Primary != nil {
		memory.RememberEntity(*result.Primary)
	}
	for _, removed := range result.Removed {
		memory.Forget(removed.ID)
	}
	if result.FocusClient != nil {
		t.conv.ActiveClientID = string(result.FocusClient.ID)
		memory.RememberEntity(*result.FocusClient)
	}
}

// recover turns a failure into a user-facing response. Resolution and
// validation failures become clarifying questions.
func (c *Controller) recover(t *turn, tool string, err error) AssistantResponse {
	clarify := func(text string) AssistantResponse {
		return AssistantResponse{Kind: ResponseClarification, Text: text, Tool: tool}
	}

	var (
		ambiguous *domain.AmbiguousEntityError
		noMatch   *domain.NoMatchError
		dateErr   *domain.DateParseError
		schemaErr *domain.SchemaValidationError
		unknown   *domain.UnknownToolError
		execErr   *domain.ExecutionError
		expired   *domain.ExpiredActionError
		choice    *clientChoiceError
	)

	switch {
	case errors.As(err, &ambiguous):
		labels := make([]string, 0, len(ambiguous.Candidates))
		for _, candidate := range ambiguous.Candidates {
			labels = append(labels, candidate.Label())
		}
		return clarify(fmt.Sprintf(t.msg.Ambiguous, ambiguous.Reference, strings.Join(labels, ", ")))
	case errors.As(err, &noMatch):
		if IsPronoun(noMatch.Reference) {
			return clarify(fmt.Sprintf(t.msg.Unresolved, t.msg.entity(noMatch.Type), noMatch.Reference))
		}
		return clarify(fmt.Sprintf(t.msg.NoMatch, t.msg.entity(noMatch.Type), noMatch.Reference))
	case errors.As(err, &dateErr):
		return clarify(fmt.Sprintf(t.msg.DateParse, dateErr.Expression))
	case errors.As(err, &schemaErr):
		return clarify(c.schemaQuestion(t, schemaErr))
	case errors.As(err, &choice):
		labels := make([]string, 0, len(choice.Clients))
		for _, client := range choice.Clients {
			labels = append(labels, client.Label())
		}
		return clarify(fmt.Sprintf(t.msg.WhichClient, strings.Join(labels, ", ")))
	case errors.Is(err, errNoClients):
		return clarify(t.msg.NoClients)
	case errors.As(err, &unknown):
		c.logger.Warn().Err(err).Str("session_id", t.conv.SessionID).Msg("model referenced an unknown tool")
		return AssistantResponse{Kind: ResponseError, Text: t.msg.UnknownTool}
	case errors.As(err, &expired):
		return AssistantResponse{Kind: ResponseError, Text: t.msg.Expired, Tool: expired.ToolName, State: domain.ActionExpired}
	case errors.As(err, &execErr):
		return c.executionFailure(t, execErr)
	}

	return c.unavailable(t, err)
}

func (c *Controller) schemaQuestion(t *turn, err *domain.SchemaValidationError) string {
	param := domain.ParamSpec{Name: err.Field}
	if def, lookupErr := c.catalog.Get(err.Tool); lookupErr == nil {
		if p, ok := def.Param(err.Field); ok {
			param = p
		}
	}
	if !err.Missing() {
		return fmt.Sprintf(t.msg.InvalidField, t.msg.field(param.Name), err.Reason)
	}
	if param.Type.IsReference() {
		return fmt.Sprintf(t.msg.MissingEntity, t.msg.entity(param.EntityType))
	}
	return fmt.Sprintf(t.msg.MissingField, t.msg.field(param.Name))
}

func (c *Controller) executionFailure(t *turn, err *domain.ExecutionError) AssistantResponse {
	c.logger.Warn().Err(err).Str("session_id", t.conv.SessionID).Str("tool", err.Tool).Int("completed", len(err.Completed)).Msg("tool execution failed")

	explanation := t.msg.ExplainStore
	switch {
	case errors.Is(err, domain.ErrScopeViolation):
		explanation = t.msg.ExplainScope
	case errors.Is(err, domain.ErrEntityNotFound):
		explanation = t.msg.ExplainNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, t.msg.ExecutionFailed, explanation)
	if len(err.Completed) > 0 {
		b.WriteString("\n" + t.msg.CompletedBefore)
		for _, record := range err.Completed {
			b.WriteString(fmt.Sprintf("\n- %s %s", t.msg.entity(record.Entity.Type), record.Entity.Label()))
		}
	}
	b.WriteString("\n" + t.msg.Retry)

	return AssistantResponse{Kind: ResponseError, Text: b.String(), Tool: err.Tool}
}

func (c *Controller) unavailable(t *turn, err error) AssistantResponse {
	c.logger.Error().Stack().Err(err).Str("session_id", t.conv.SessionID).Msg("collaborator failure")
	return AssistantResponse{Kind: ResponseError, Text: t.msg.Unavailable}
}
