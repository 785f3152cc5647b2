package toml

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	entitiesPathKey = "store.path"
	entitiesFile    = "entities.toml"
	entitiesKind    = "entities"
)

// EntityStore keeps every tenant's entities in one TOML file.
type EntityStore struct {
	path  string
	clock ports.Clock
	mu    *sync.RWMutex
}

var _ ports.EntityStore = (*EntityStore)(nil)

func NewEntityStore(cfg *viper.Viper, clock ports.Clock) (*EntityStore, error) {
	path, err := resolvePath(cfg, entitiesPathKey, entitiesFile)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &EntityStore{path: path, clock: clock, mu: lockForPath(path)}, nil
}

func (s *EntityStore) Path() string {
	return s.path
}

func (s *EntityStore) Get(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) (domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Entity{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.Entity{}, err
	}

	if i := findVisible(file.Entities, scope, entityType, id); i >= 0 {
		return fromEntitySchema(file.Entities[i]), nil
	}
	return domain.Entity{}, fmt.Errorf("get %s %s: %w", entityType, id, domain.ErrEntityNotFound)
}

func (s *EntityStore) Query(ctx context.Context, scope domain.Scope, entityType domain.EntityType, filter domain.Filter) ([]domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	out := []domain.Entity{}
	for _, entry := range file.Entities {
		if entry.Type != string(entityType) {
			continue
		}
		entity := fromEntitySchema(entry)
		if scope.Allows(entity) && filter.Matches(entity) {
			out = append(out, entity)
		}
	}
	return out, nil
}

func (s *EntityStore) Create(ctx context.Context, scope domain.Scope, entityType domain.EntityType, fields map[string]any) (domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Entity{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}
	if !entityType.Valid() {
		return domain.Entity{}, fmt.Errorf("create entity: unknown type %q", entityType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.Entity{}, err
	}

	now := s.clock.Now()
	entity := domain.Entity{
		Type:      entityType,
		ID:        domain.EntityID(uuid.NewString()),
		CompanyID: scope.CompanyID,
		Fields:    normalizeFields(domain.MergeFields(nil, fields)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entityType.ClientScoped() {
		owner := domain.Scope{CompanyID: scope.CompanyID}
		if findVisible(file.Entities, owner, domain.EntityClient, domain.EntityID(scope.ClientID)) < 0 {
			return domain.Entity{}, fmt.Errorf("create %s: client %q: %w", entityType, scope.ClientID, domain.ErrScopeViolation)
		}
		entity.ClientID = scope.ClientID
	}
	entity.Name = domain.DisplayName(entityType, entity.Fields)

	file.Entities = append(file.Entities, toEntitySchema(entity))
	if err := ctx.Err(); err != nil {
		return domain.Entity{}, err
	}
	if err := writeTOMLFile(s.path, file); err != nil {
		return domain.Entity{}, err
	}
	return entity, nil
}

func (s *EntityStore) Update(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Entity{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.Entity{}, err
	}

	i := findVisible(file.Entities, scope, entityType, id)
	if i < 0 {
		return domain.Entity{}, fmt.Errorf("update %s %s: %w", entityType, id, domain.ErrEntityNotFound)
	}

	entity := fromEntitySchema(file.Entities[i])
	entity.Fields = normalizeFields(domain.MergeFields(entity.Fields, fields))
	entity.Name = domain.DisplayName(entity.Type, entity.Fields)
	entity.UpdatedAt = s.clock.Now()
	file.Entities[i] = toEntitySchema(entity)

	if err := ctx.Err(); err != nil {
		return domain.Entity{}, err
	}
	if err := writeTOMLFile(s.path, file); err != nil {
		return domain.Entity{}, err
	}
	return entity, nil
}

func (s *EntityStore) Delete(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scope.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	i := findVisible(file.Entities, scope, entityType, id)
	if i < 0 {
		return fmt.Errorf("delete %s %s: %w", entityType, id, domain.ErrEntityNotFound)
	}
	file.Entities = append(file.Entities[:i], file.Entities[i+1:]...)

	return writeTOMLFile(s.path, file)
}

func (s *EntityStore) readSchema() (entitiesFileSchema, error) {
	var file entitiesFileSchema
	if err := readTOMLFile(s.path, entitiesKind, &file); err != nil {
		return entitiesFileSchema{}, err
	}
	if err := validateVersion(entitiesKind, file.Version); err != nil {
		return entitiesFileSchema{}, err
	}
	file.Version = defaultVersion(file.Version)

	return file, nil
}

func findVisible(entries []entitySchema, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) int {
	for i, entry := range entries {
		if entry.ID != string(id) || entry.Type != string(entityType) {
			continue
		}
		if scope.Allows(fromEntitySchema(entry)) {
			return i
		}
		return -1
	}
	return -1
}

// normalizeFields narrows values to the types TOML round-trips unchanged.
func normalizeFields(fields map[string]any) map[string]any {
	for key, value := range fields {
		switch v := value.(type) {
		case int:
			fields[key] = int64(v)
		case int32:
			fields[key] = int64(v)
		case float32:
			fields[key] = float64(v)
		case json.Number:
			if n, err := v.Int64(); err == nil {
				fields[key] = n
			} else if f, err := v.Float64(); err == nil {
				fields[key] = f
			} else {
				fields[key] = v.String()
			}
		}
	}
	return fields
}

func toEntitySchema(entity domain.Entity) entitySchema {
	return entitySchema{
		Type:      string(entity.Type),
		ID:        string(entity.ID),
		CompanyID: entity.CompanyID,
		ClientID:  entity.ClientID,
		Name:      entity.Name,
		Fields:    domain.CloneFields(entity.Fields),
		CreatedAt: formatTime(entity.CreatedAt),
		UpdatedAt: formatTime(entity.UpdatedAt),
	}
}

func fromEntitySchema(entry entitySchema) domain.Entity {
	return domain.Entity{
		Type:      domain.EntityType(entry.Type),
		ID:        domain.EntityID(entry.ID),
		CompanyID: entry.CompanyID,
		ClientID:  entry.ClientID,
		Name:      entry.Name,
		Fields:    domain.CloneFields(entry.Fields),
		CreatedAt: parseTime(entry.CreatedAt),
		UpdatedAt: parseTime(entry.UpdatedAt),
	}
}
