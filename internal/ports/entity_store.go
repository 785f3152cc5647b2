package ports

import (
	"context"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// EntityStore persists wedding-planning entities. Every call is bounded by a
// scope: reads outside it report domain.ErrEntityNotFound, writes outside it
// report domain.ErrScopeViolation.
type EntityStore interface {
	Get(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) (domain.Entity, error)
	Query(ctx context.Context, scope domain.Scope, entityType domain.EntityType, filter domain.Filter) ([]domain.Entity, error)
	Create(ctx context.Context, scope domain.Scope, entityType domain.EntityType, fields map[string]any) (domain.Entity, error)
	// Update merges fields into the stored record. A nil value removes the field.
	Update(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error)
	Delete(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) error
}
