package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

// EntityStore keeps entities in process memory. Records are returned in
// insertion order.
type EntityStore struct {
	clock ports.Clock

	mu       sync.RWMutex
	order    []domain.EntityID
	entities map[domain.EntityID]domain.Entity
}

var _ ports.EntityStore = (*EntityStore)(nil)

func NewEntityStore(clock ports.Clock) *EntityStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &EntityStore{clock: clock, entities: map[domain.EntityID]domain.Entity{}}
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

	entity, ok := s.visible(scope, entityType, id)
	if !ok {
		return domain.Entity{}, fmt.Errorf("get %s %s: %w", entityType, id, domain.ErrEntityNotFound)
	}
	return cloneEntity(entity), nil
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

	out := []domain.Entity{}
	for _, id := range s.order {
		entity := s.entities[id]
		if entity.Type != entityType || !scope.Allows(entity) || !filter.Matches(entity) {
			continue
		}
		out = append(out, cloneEntity(entity))
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

	entity := domain.Entity{
		Type:      entityType,
		ID:        domain.EntityID(uuid.NewString()),
		CompanyID: scope.CompanyID,
		Fields:    withoutNil(fields),
	}
	if entityType.ClientScoped() {
		if _, ok := s.visible(domain.Scope{CompanyID: scope.CompanyID}, domain.EntityClient, domain.EntityID(scope.ClientID)); !ok {
			return domain.Entity{}, fmt.Errorf("create %s: client %q: %w", entityType, scope.ClientID, domain.ErrScopeViolation)
		}
		entity.ClientID = scope.ClientID
	}
	entity.Name = domain.DisplayName(entityType, entity.Fields)
	now := s.clock.Now()
	entity.CreatedAt, entity.UpdatedAt = now, now

	s.entities[entity.ID] = entity
	s.order = append(s.order, entity.ID)
	return cloneEntity(entity), nil
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

	entity, ok := s.visible(scope, entityType, id)
	if !ok {
		return domain.Entity{}, fmt.Errorf("update %s %s: %w", entityType, id, domain.ErrEntityNotFound)
	}

	entity.Fields = domain.MergeFields(entity.Fields, fields)
	entity.Name = domain.DisplayName(entity.Type, entity.Fields)
	entity.UpdatedAt = s.clock.Now()
	s.entities[id] = entity
	return cloneEntity(entity), nil
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

	if _, ok := s.visible(scope, entityType, id); !ok {
		return fmt.Errorf("delete %s %s: %w", entityType, id, domain.ErrEntityNotFound)
	}
	delete(s.entities, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *EntityStore) visible(scope domain.Scope, entityType domain.EntityType, id domain.EntityID) (domain.Entity, bool) {
	entity, ok := s.entities[id]
	if !ok || entity.Type != entityType || !scope.Allows(entity) {
		return domain.Entity{}, false
	}
	return entity, true
}

func cloneEntity(entity domain.Entity) domain.Entity {
	entity.Fields = domain.CloneFields(entity.Fields)
	return entity
}

func withoutNil(fields map[string]any) map[string]any {
	return domain.MergeFields(nil, fields)
}
