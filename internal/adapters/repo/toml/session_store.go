package toml

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	sessionsPathKey = "sessions.path"
	sessionsFile    = "sessions.toml"
	sessionsKind    = "sessions"
)

const (
	argString     = "string"
	argNumber     = "number"
	argInteger    = "integer"
	argBoolean    = "boolean"
	argEntity     = "entity"
	argEntityList = "entity_list"
)

// SessionStore persists conversations so a terminal user can resume them.
type SessionStore struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(cfg *viper.Viper) (*SessionStore, error) {
	path, err := resolvePath(cfg, sessionsPathKey, sessionsFile)
	if err != nil {
		return nil, err
	}

	return &SessionStore{path: path, mu: lockForPath(path)}, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.ConversationContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConversationContext{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.ConversationContext{}, err
	}

	for _, entry := range file.Sessions {
		if entry.ID == sessionID {
			return fromSessionSchema(entry), nil
		}
	}
	return domain.ConversationContext{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
}

func (s *SessionStore) Save(ctx context.Context, conversation domain.ConversationContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded, err := toSessionSchema(conversation)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return writeTOMLFile(s.path, file)
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	for i := range file.Sessions {
		if file.Sessions[i].ID == sessionID {
			file.Sessions = append(file.Sessions[:i], file.Sessions[i+1:]...)
			return writeTOMLFile(s.path, file)
		}
	}
	return fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
}

func (s *SessionStore) readSchema() (sessionsFileSchema, error) {
	var file sessionsFileSchema
	if err := readTOMLFile(s.path, sessionsKind, &file); err != nil {
		return sessionsFileSchema{}, err
	}
	if err := validateVersion(sessionsKind, file.Version); err != nil {
		return sessionsFileSchema{}, err
	}
	file.Version = defaultVersion(file.Version)

	return file, nil
}

func toSessionSchema(conversation domain.ConversationContext) (sessionSchema, error) {
	schema := sessionSchema{
		ID:             conversation.SessionID,
		CompanyID:      conversation.CompanyID,
		UserID:         conversation.UserID,
		ActiveClientID: conversation.ActiveClientID,
		Language:       string(conversation.Language),
		Turn:           conversation.Turn,
		StartedAt:      formatTime(conversation.StartedAt),
		UpdatedAt:      formatTime(conversation.UpdatedAt),
	}

	if conversation.RecentTurns != nil {
		schema.MaxTurns = conversation.RecentTurns.Capacity()
		for _, exchange := range conversation.RecentTurns.Items() {
			schema.Turns = append(schema.Turns, exchangeSchema{
				User:      exchange.User,
				Assistant: exchange.Assistant,
				At:        formatTime(exchange.At),
			})
		}
	}

	for _, entry := range conversation.Memory.Entries() {
		schema.Memory = append(schema.Memory, memoryEntrySchema{
			Role:     string(entry.Role),
			Plural:   entry.Plural,
			Seq:      entry.Seq,
			Entities: toRefSchemas(entry.Entities),
		})
	}

	if pending := conversation.Pending; pending != nil {
		args, err := toArgSchemas(pending.Args)
		if err != nil {
			return sessionSchema{}, fmt.Errorf("encode pending %s: %w", pending.ToolName, err)
		}
		schema.Pending = &pendingActionSchema{
			ID:             pending.ID,
			Tool:           pending.ToolName,
			ClientID:       pending.ClientID,
			State:          string(pending.State),
			ProposedAt:     formatTime(pending.ProposedAt),
			ProposedTurn:   pending.ProposedTurn,
			Preview:        pending.Preview,
			CascadePreview: pending.CascadePreview,
			Args:           args,
		}
	}

	return schema, nil
}

func fromSessionSchema(schema sessionSchema) domain.ConversationContext {
	exchanges := make([]domain.Exchange, 0, len(schema.Turns))
	for _, turn := range schema.Turns {
		exchanges = append(exchanges, domain.Exchange{User: turn.User, Assistant: turn.Assistant, At: parseTime(turn.At)})
	}

	entries := make([]domain.MemoryEntry, 0, len(schema.Memory))
	for _, entry := range schema.Memory {
		entries = append(entries, domain.MemoryEntry{
			Role:     domain.MemoryRole(entry.Role),
			Plural:   entry.Plural,
			Seq:      entry.Seq,
			Entities: fromRefSchemas(entry.Entities),
		})
	}

	conversation := domain.ConversationContext{
		SessionID:      schema.ID,
		CompanyID:      schema.CompanyID,
		UserID:         schema.UserID,
		ActiveClientID: schema.ActiveClientID,
		RecentTurns:    domain.RestoreTurnLog(schema.MaxTurns, exchanges),
		Memory:         domain.RestoreEntityMemory(entries),
		Turn:           schema.Turn,
		Language:       domain.Language(schema.Language),
		StartedAt:      parseTime(schema.StartedAt),
		UpdatedAt:      parseTime(schema.UpdatedAt),
	}

	if pending := schema.Pending; pending != nil {
		conversation.Pending = &domain.PendingAction{
			ID:             pending.ID,
			ToolName:       pending.Tool,
			Args:           fromArgSchemas(pending.Args),
			ClientID:       pending.ClientID,
			Preview:        pending.Preview,
			CascadePreview: pending.CascadePreview,
			State:          domain.ActionState(pending.State),
			ProposedAt:     parseTime(pending.ProposedAt),
			ProposedTurn:   pending.ProposedTurn,
		}
	}

	return conversation
}

func toArgSchemas(args domain.Args) ([]argSchema, error) {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]argSchema, 0, len(args))
	for _, name := range names {
		arg := argSchema{Name: name}
		switch v := args[name].(type) {
		case string:
			arg.Kind, arg.String = argString, v
		case float64:
			arg.Kind, arg.Number = argNumber, v
		case int64:
			arg.Kind, arg.Integer = argInteger, v
		case int:
			arg.Kind, arg.Integer = argInteger, int64(v)
		case bool:
			arg.Kind, arg.Bool = argBoolean, v
		case domain.EntityRef:
			arg.Kind, arg.Entities = argEntity, toRefSchemas([]domain.EntityRef{v})
		case []domain.EntityRef:
			arg.Kind, arg.Entities = argEntityList, toRefSchemas(v)
		default:
			return nil, fmt.Errorf("argument %q has unsupported type %T", name, v)
		}
		out = append(out, arg)
	}
	return out, nil
}

func fromArgSchemas(schemas []argSchema) domain.Args {
	args := make(domain.Args, len(schemas))
	for _, arg := range schemas {
		switch arg.Kind {
		case argString:
			args[arg.Name] = arg.String
		case argNumber:
			args[arg.Name] = arg.Number
		case argInteger:
			args[arg.Name] = arg.Integer
		case argBoolean:
			args[arg.Name] = arg.Bool
		case argEntity:
			if refs := fromRefSchemas(arg.Entities); len(refs) > 0 {
				args[arg.Name] = refs[0]
			}
		case argEntityList:
			args[arg.Name] = fromRefSchemas(arg.Entities)
		}
	}
	return args
}

func toRefSchemas(refs []domain.EntityRef) []entityRefSchema {
	out := make([]entityRefSchema, 0, len(refs))
	for _, ref := range refs {
		out = append(out, entityRefSchema{Type: string(ref.Type), ID: string(ref.ID), Name: ref.Name})
	}
	return out
}

func fromRefSchemas(schemas []entityRefSchema) []domain.EntityRef {
	out := make([]domain.EntityRef, 0, len(schemas))
	for _, schema := range schemas {
		out = append(out, domain.EntityRef{Type: domain.EntityType(schema.Type), ID: domain.EntityID(schema.ID), Name: schema.Name})
	}
	return out
}
