package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/storetest"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

func newTestStore(t *testing.T, path string, clock ports.Clock) *EntityStore {
	t.Helper()

	config := viper.New()
	config.Set("store.path", path)
	store, err := NewEntityStore(context.Background(), config, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEntityStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T, clock ports.Clock) ports.EntityStore {
		return newTestStore(t, filepath.Join(t.TempDir(), "entities.db"), clock)
	})
}

func TestEntityStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "entities.db")
	ctx := context.Background()
	scope := domain.Scope{CompanyID: "company-a"}

	first := newTestStore(t, path, nil)
	client, err := first.Create(ctx, scope, domain.EntityClient, map[string]any{"partner1": "Asha", "partner2": "Vikram", "budget": 42000.5})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestStore(t, path, nil)
	got, err := second.Get(ctx, scope, domain.EntityClient, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha & Vikram", got.Name)
	assert.Equal(t, 42000.5, got.Number("budget"))
}
