package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

// toolRun carries one execution. Every write goes through it so the list of
// completed records is exact when a later write fails.
type toolRun struct {
	def       domain.ToolDefinition
	args      domain.Args
	scope     domain.Scope
	store     ports.EntityStore
	now       time.Time
	loaded    map[domain.EntityID]domain.Entity
	result    domain.ExecutionResult
	completed []domain.CascadeRecord
}

func (r *toolRun) checkOwnership(ctx context.Context) error {
	for _, param := range r.def.Params {
		if !param.Type.IsReference() {
			continue
		}
		var refs []domain.EntityRef
		switch param.Type {
		case domain.ParamEntity:
			if ref := r.args.Entity(param.Name); !ref.IsZero() {
				refs = append(refs, ref)
			}
		case domain.ParamEntityList:
			refs = r.args.Entities(param.Name)
		}

		for _, ref := range refs {
			if ref.Type != param.EntityType {
				return fmt.Errorf("%w: %s expects a %s, got %s", domain.ErrScopeViolation, param.Name, param.EntityType, ref.Type)
			}
			entity, err := r.store.Get(ctx, r.scope, ref.Type, ref.ID)
			if err != nil {
				if errors.Is(err, domain.ErrEntityNotFound) {
					return fmt.Errorf("%w: %s %s is not visible in this scope", domain.ErrScopeViolation, ref.Type, ref.ID)
				}
				return fmt.Errorf("load %s %s: %w", ref.Type, ref.ID, err)
			}
			if !r.scope.Allows(entity) {
				return fmt.Errorf("%w: %s %s is not visible in this scope", domain.ErrScopeViolation, ref.Type, ref.ID)
			}
			r.loaded[entity.ID] = entity
		}
	}
	return nil
}

func (r *toolRun) entity(ref domain.EntityRef) domain.Entity {
	return r.loaded[ref.ID]
}

func (r *toolRun) createPrimary(ctx context.Context, t domain.EntityType, fields map[string]any) (domain.Entity, error) {
	entity, err := r.store.Create(ctx, r.scope, t, fields)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("create %s: %w", t, err)
	}
	ref := entity.Ref()
	r.result.Primary = &ref
	r.completed = append(r.completed, domain.CascadeRecord{Entity: ref})
	return entity, nil
}

// update writes a primary-level change and lists the record as affected.
func (r *toolRun) update(ctx context.Context, t domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error) {
	entity, err := r.store.Update(ctx, r.scope, t, id, fields)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("update %s %s: %w", t, id, err)
	}
	ref := entity.Ref()
	if r.result.Primary == nil {
		r.result.Primary = &ref
	}
	r.result.Affected = append(r.result.Affected, ref)
	r.completed = append(r.completed, domain.CascadeRecord{Entity: ref})
	return entity, nil
}

func (r *toolRun) remove(ctx context.Context, ref domain.EntityRef) error {
	if err := r.store.Delete(ctx, r.scope, ref.Type, ref.ID); err != nil {
		return fmt.Errorf("delete %s %s: %w", ref.Type, ref.ID, err)
	}
	r.result.Removed = append(r.result.Removed, ref)
	r.completed = append(r.completed, domain.CascadeRecord{Entity: ref})
	return nil
}

func (r *toolRun) createCascade(ctx context.Context, effect string, scope domain.Scope, t domain.EntityType, fields map[string]any) (domain.Entity, error) {
	entity, err := r.store.Create(ctx, scope, t, fields)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("create %s (%s): %w", t, effect, err)
	}
	r.recordCascade(effect, entity)
	return entity, nil
}

func (r *toolRun) updateCascade(ctx context.Context, effect string, t domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error) {
	entity, err := r.store.Update(ctx, r.scope, t, id, fields)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("update %s %s (%s): %w", t, id, effect, err)
	}
	r.recordCascade(effect, entity)
	return entity, nil
}

func (r *toolRun) recordCascade(effect string, entity domain.Entity) {
	record := domain.CascadeRecord{Effect: effect, Entity: entity.Ref()}
	r.result.Cascades = append(r.result.Cascades, record)
	r.completed = append(r.completed, record)
}

func (r *toolRun) query(ctx context.Context, t domain.EntityType, filter domain.Filter) ([]domain.Entity, error) {
	entities, err := r.store.Query(ctx, r.scope, t, filter)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t, err)
	}
	return entities, nil
}

// fieldsFromArgs copies the named scalar arguments that are present.
func (r *toolRun) fieldsFromArgs(names ...string) map[string]any {
	fields := map[string]any{}
	for _, name := range names {
		if r.args.Has(name) {
			fields[name] = r.args[name]
		}
	}
	return fields
}

func (r *toolRun) line(format string, args ...any) {
	r.result.Lines = append(r.result.Lines, fmt.Sprintf(format, args...))
}

func (r *toolRun) list(entities []domain.Entity) {
	for _, entity := range entities {
		r.result.Affected = append(r.result.Affected, entity.Ref())
	}
	r.result.Plural = true
}
