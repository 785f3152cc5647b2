// Package storetest holds the behavior every ports.EntityStore must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
	"github.com/bnema/weddingflow-assistant/internal/ports/mocks"
)

// Factory builds an empty store that reads time from clock.
type Factory func(t *testing.T, clock ports.Clock) ports.EntityStore

var Now = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

const (
	companyA = "company-a"
	companyB = "company-b"
)

func Run(t *testing.T, factory Factory) {
	t.Helper()

	cases := []struct {
		name string
		run  func(t *testing.T, store ports.EntityStore)
	}{
		{"CreateAndGet", testCreateAndGet},
		{"CompanyScopeRequired", testCompanyScopeRequired},
		{"ClientScopedCreateRequiresOwnedClient", testClientScopedCreateRequiresOwnedClient},
		{"CrossTenantReadsAreNotFound", testCrossTenantReads},
		{"ClientScopeFiltersQuery", testClientScopeFiltersQuery},
		{"UpdateMergesAndRemovesFields", testUpdateMerges},
		{"UpdateOutsideScope", testUpdateOutsideScope},
		{"Delete", testDelete},
		{"QueryFiltersByValue", testQueryFilters},
		{"QueryKeepsInsertionOrder", testQueryOrder},
		{"CanceledContext", testCanceledContext},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := mocks.NewMockClock(t)
			clock.EXPECT().Now().Return(Now).Maybe()
			tc.run(t, factory(t, clock))
		})
	}
}

func createClient(t *testing.T, store ports.EntityStore, company, partner1, partner2 string) domain.Entity {
	t.Helper()

	client, err := store.Create(context.Background(), domain.Scope{CompanyID: company}, domain.EntityClient, map[string]any{
		"partner1":     partner1,
		"partner2":     partner2,
		"wedding_date": "2026-11-21",
		"budget":       float64(50000),
	})
	require.NoError(t, err)
	return client
}

func testCreateAndGet(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Asha & Vikram", client.Name)
	assert.Equal(t, companyA, client.CompanyID)
	assert.Empty(t, client.ClientID)
	assert.True(t, client.CreatedAt.Equal(Now))

	got, err := store.Get(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)
	assert.Equal(t, client.Name, got.Name)
	assert.Equal(t, "2026-11-21", got.String("wedding_date"))
	assert.Equal(t, 50000.0, got.Number("budget"))
	assert.True(t, got.UpdatedAt.Equal(Now))

	_, err = store.Get(ctx, domain.Scope{CompanyID: companyA}, domain.EntityGuest, client.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func testCompanyScopeRequired(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Scope{}, domain.EntityClient, map[string]any{"partner1": "Asha"})
	require.ErrorIs(t, err, domain.ErrScopeViolation)

	_, err = store.Query(ctx, domain.Scope{}, domain.EntityClient, domain.Filter{})
	require.ErrorIs(t, err, domain.ErrScopeViolation)

	_, err = store.Get(ctx, domain.Scope{}, domain.EntityClient, "anything")
	require.ErrorIs(t, err, domain.ErrScopeViolation)
}

func testClientScopedCreateRequiresOwnedClient(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	foreign := createClient(t, store, companyB, "Lena", "Marc")

	_, err := store.Create(ctx, domain.Scope{CompanyID: companyA}, domain.EntityGuest, map[string]any{"name": "Priya"})
	require.ErrorIs(t, err, domain.ErrScopeViolation)

	_, err = store.Create(ctx, domain.Scope{CompanyID: companyA, ClientID: string(foreign.ID)}, domain.EntityGuest, map[string]any{"name": "Priya"})
	require.ErrorIs(t, err, domain.ErrScopeViolation)

	guests, err := store.Query(ctx, domain.Scope{CompanyID: companyB}, domain.EntityGuest, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func testCrossTenantReads(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")
	guest, err := store.Create(ctx, domain.Scope{CompanyID: companyA, ClientID: string(client.ID)}, domain.EntityGuest, map[string]any{"name": "Priya"})
	require.NoError(t, err)

	_, err = store.Get(ctx, domain.Scope{CompanyID: companyB}, domain.EntityGuest, guest.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	clients, err := store.Query(ctx, domain.Scope{CompanyID: companyB}, domain.EntityClient, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, clients)

	err = store.Delete(ctx, domain.Scope{CompanyID: companyB}, domain.EntityGuest, guest.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	_, err = store.Get(ctx, domain.Scope{CompanyID: companyA}, domain.EntityGuest, guest.ID)
	require.NoError(t, err)
}

func testClientScopeFiltersQuery(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	first := createClient(t, store, companyA, "Asha", "Vikram")
	second := createClient(t, store, companyA, "Nina", "Omar")

	_, err := store.Create(ctx, domain.Scope{CompanyID: companyA, ClientID: string(first.ID)}, domain.EntityGuest, map[string]any{"name": "Priya"})
	require.NoError(t, err)
	other, err := store.Create(ctx, domain.Scope{CompanyID: companyA, ClientID: string(second.ID)}, domain.EntityGuest, map[string]any{"name": "Raj"})
	require.NoError(t, err)
	assert.Equal(t, string(second.ID), other.ClientID)

	guests, err := store.Query(ctx, domain.Scope{CompanyID: companyA, ClientID: string(first.ID)}, domain.EntityGuest, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Priya", guests[0].Name)

	_, err = store.Get(ctx, domain.Scope{CompanyID: companyA, ClientID: string(first.ID)}, domain.EntityGuest, other.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	all, err := store.Query(ctx, domain.Scope{CompanyID: companyA}, domain.EntityGuest, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testUpdateMerges(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")
	scope := domain.Scope{CompanyID: companyA, ClientID: string(client.ID)}

	guest, err := store.Create(ctx, scope, domain.EntityGuest, map[string]any{
		"name":        "Priya",
		"email":       "priya@example.com",
		"rsvp_status": "pending",
	})
	require.NoError(t, err)

	updated, err := store.Update(ctx, scope, domain.EntityGuest, guest.ID, map[string]any{
		"name":        "Priya Sharma",
		"rsvp_status": "confirmed",
		"email":       nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", updated.Name)
	assert.Equal(t, "confirmed", updated.String("rsvp_status"))
	assert.NotContains(t, updated.Fields, "email")

	got, err := store.Get(ctx, scope, domain.EntityGuest, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", got.Name)
	assert.Equal(t, "confirmed", got.String("rsvp_status"))
	assert.NotContains(t, got.Fields, "email")
	assert.Equal(t, string(client.ID), got.ClientID)
}

func testUpdateOutsideScope(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")

	_, err := store.Update(ctx, domain.Scope{CompanyID: companyB}, domain.EntityClient, client.ID, map[string]any{"venue": "Elsewhere"})
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	_, err = store.Update(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, "missing", map[string]any{"venue": "Elsewhere"})
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	got, err := store.Get(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, client.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Fields, "venue")
}

func testDelete(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")

	require.NoError(t, store.Delete(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, client.ID))

	_, err := store.Get(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, client.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)

	err = store.Delete(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, client.ID)
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func testQueryFilters(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")
	scope := domain.Scope{CompanyID: companyA, ClientID: string(client.ID)}

	for _, fields := range []map[string]any{
		{"name": "Priya", "rsvp_status": "confirmed", "plus_ones": int64(2)},
		{"name": "Raj", "rsvp_status": "pending", "plus_ones": int64(0)},
		{"name": "Meera", "rsvp_status": "confirmed", "plus_ones": int64(1)},
	} {
		_, err := store.Create(ctx, scope, domain.EntityGuest, fields)
		require.NoError(t, err)
	}

	confirmed, err := store.Query(ctx, scope, domain.EntityGuest, domain.Filter{Fields: map[string]any{"rsvp_status": "confirmed"}})
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	withTwo, err := store.Query(ctx, scope, domain.EntityGuest, domain.Filter{Fields: map[string]any{"plus_ones": 2.0}})
	require.NoError(t, err)
	require.Len(t, withTwo, 1)
	assert.Equal(t, "Priya", withTwo[0].Name)
	assert.Equal(t, 2.0, withTwo[0].Number("plus_ones"))

	none, err := store.Query(ctx, scope, domain.EntityGuest, domain.Filter{Fields: map[string]any{"side": "bride"}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testQueryOrder(t *testing.T, store ports.EntityStore) {
	ctx := context.Background()
	client := createClient(t, store, companyA, "Asha", "Vikram")
	scope := domain.Scope{CompanyID: companyA, ClientID: string(client.ID)}

	for _, title := range []string{"Ceremony", "Cocktails", "Dinner"} {
		_, err := store.Create(ctx, scope, domain.EntityTimelineItem, map[string]any{"title": title, "time": "16:00"})
		require.NoError(t, err)
	}

	items, err := store.Query(ctx, scope, domain.EntityTimelineItem, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Ceremony", "Cocktails", "Dinner"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func testCanceledContext(t *testing.T, store ports.EntityStore) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, domain.Scope{CompanyID: companyA}, domain.EntityClient, map[string]any{"partner1": "Asha"})
	require.ErrorIs(t, err, context.Canceled)
}
