package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports/mocks"
)

// Monday.
var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

const (
	companyA = "company-a"
	companyB = "company-b"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func newFixedClock(t *testing.T) *mocks.MockClock {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()
	return clock
}

func seedClient(t *testing.T, store *memory.EntityStore, companyID string, fields map[string]any) domain.Entity {
	t.Helper()

	client, err := store.Create(context.Background(), domain.Scope{CompanyID: companyID}, domain.EntityClient, fields)
	require.NoError(t, err)
	return client
}

func seedEntity(t *testing.T, store *memory.EntityStore, client domain.Entity, entityType domain.EntityType, fields map[string]any) domain.Entity {
	t.Helper()

	scope := domain.Scope{CompanyID: client.CompanyID, ClientID: string(client.ID)}
	entity, err := store.Create(context.Background(), scope, entityType, fields)
	require.NoError(t, err)
	return entity
}

func scopeOf(client domain.Entity) domain.Scope {
	return domain.Scope{CompanyID: client.CompanyID, ClientID: string(client.ID)}
}

func queryAll(t *testing.T, store *memory.EntityStore, scope domain.Scope, entityType domain.EntityType) []domain.Entity {
	t.Helper()

	entities, err := store.Query(context.Background(), scope, entityType, domain.Filter{})
	require.NoError(t, err)
	return entities
}
