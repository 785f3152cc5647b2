package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type resolverFixture struct {
	store     *memory.EntityStore
	client    domain.Entity
	rajKumar  domain.Entity
	rajKapoor domain.Entity
	meera     domain.Entity
	other     domain.Entity
	otherRaj  domain.Entity
}

func newResolverFixture(t *testing.T) resolverFixture {
	t.Helper()

	store := memory.NewEntityStore(newFixedClock(t))
	f := resolverFixture{store: store}
	f.client = seedClient(t, store, companyA, map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	f.rajKumar = seedEntity(t, store, f.client, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})
	f.rajKapoor = seedEntity(t, store, f.client, domain.EntityGuest, map[string]any{"name": "Raj Kapoor"})
	f.meera = seedEntity(t, store, f.client, domain.EntityGuest, map[string]any{"name": "Meera Shah"})

	f.other = seedClient(t, store, companyB, map[string]any{"partner1": "Priya", "partner2": "Arjun"})
	f.otherRaj = seedEntity(t, store, f.other, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})
	return f
}

func TestResolverAmbiguousFirstName(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})

	_, err := resolver.Resolve(context.Background(), ResolveRequest{
		Query: "Raj",
		Type:  domain.EntityGuest,
		Scope: scopeOf(f.client),
	})

	var ambiguous *domain.AmbiguousEntityError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "Raj", ambiguous.Reference)
	require.Len(t, ambiguous.Candidates, 2)
	assert.Equal(t, f.rajKumar.ID, ambiguous.Candidates[0].ID)
	assert.Equal(t, f.rajKapoor.ID, ambiguous.Candidates[1].ID)
	assert.Greater(t, ambiguous.Candidates[0].Confidence, ambiguous.Candidates[1].Confidence)
}

func TestResolverFullNameIsUnique(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})

	got, err := resolver.Resolve(context.Background(), ResolveRequest{
		Query: "raj  KUMAR",
		Type:  domain.EntityGuest,
		Scope: scopeOf(f.client),
	})
	require.NoError(t, err)
	assert.Equal(t, f.rajKumar.ID, got.ID)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestResolverNeverCrossesTenants(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, ResolveRequest{Query: "Raj Kumar", Type: domain.EntityGuest, Scope: scopeOf(f.other)})
	require.NoError(t, err)
	assert.Equal(t, f.otherRaj.ID, got.ID)

	// An id from another company is just unmatched text.
	_, err = resolver.Resolve(ctx, ResolveRequest{Query: string(f.otherRaj.ID), Type: domain.EntityGuest, Scope: scopeOf(f.client)})
	var noMatch *domain.NoMatchError
	require.ErrorAs(t, err, &noMatch)

	clients, err := resolver.Candidates(ctx, ResolveRequest{Query: "Priya", Type: domain.EntityClient, Scope: domain.Scope{CompanyID: companyA}})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, f.client.ID, clients[0].ID)
}

func TestResolverExactID(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})

	got, err := resolver.Resolve(context.Background(), ResolveRequest{
		Query: string(f.rajKapoor.ID),
		Type:  domain.EntityGuest,
		Scope: scopeOf(f.client),
	})
	require.NoError(t, err)
	assert.Equal(t, f.rajKapoor.ID, got.ID)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestResolverRequiresClientForScopedTypes(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})

	_, err := resolver.Resolve(context.Background(), ResolveRequest{
		Query: "Raj Kumar",
		Type:  domain.EntityGuest,
		Scope: domain.Scope{CompanyID: companyA},
	})
	assert.ErrorIs(t, err, domain.ErrScopeViolation)

	_, err = resolver.Resolve(context.Background(), ResolveRequest{
		Query: "Raj Kumar",
		Type:  domain.EntityGuest,
	})
	assert.ErrorIs(t, err, domain.ErrScopeViolation)
}

func TestResolverThresholdAndMargin(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()
	scope := scopeOf(f.client)

	_, err := NewResolver(f.store, ResolverOptions{}).Resolve(ctx, ResolveRequest{Query: "Sha", Type: domain.EntityGuest, Scope: scope})
	var noMatch *domain.NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, domain.EntityGuest, noMatch.Type)

	got, err := NewResolver(f.store, ResolverOptions{Threshold: 0.4}).Resolve(ctx, ResolveRequest{Query: "Sha", Type: domain.EntityGuest, Scope: scope})
	require.NoError(t, err)
	assert.Equal(t, f.meera.ID, got.ID)

	got, err = NewResolver(f.store, ResolverOptions{Margin: 0.01}).Resolve(ctx, ResolveRequest{Query: "Raj", Type: domain.EntityGuest, Scope: scope})
	require.NoError(t, err)
	assert.Equal(t, f.rajKumar.ID, got.ID)
}

func TestResolverUnsetMarginStillAsks(t *testing.T) {
	f := newResolverFixture(t)

	for _, margin := range []float64{0, -0.3, 1.5} {
		t.Run(fmt.Sprint(margin), func(t *testing.T) {
			_, err := NewResolver(f.store, ResolverOptions{Threshold: 0.5, Margin: margin}).Resolve(context.Background(), ResolveRequest{
				Query: "Raj",
				Type:  domain.EntityGuest,
				Scope: scopeOf(f.client),
			})

			var ambiguous *domain.AmbiguousEntityError
			require.ErrorAs(t, err, &ambiguous)
			assert.Len(t, ambiguous.Candidates, 2)
		})
	}
}

func TestResolverMemoryBreaksNearTies(t *testing.T) {
	f := newResolverFixture(t)
	remembered := domain.NewEntityMemory()
	remembered.RememberEntity(f.rajKapoor.Ref())

	got, err := NewResolver(f.store, ResolverOptions{Margin: 0.02}).Resolve(context.Background(), ResolveRequest{
		Query:  "Raj",
		Type:   domain.EntityGuest,
		Scope:  scopeOf(f.client),
		Memory: remembered,
	})
	require.NoError(t, err)
	assert.Equal(t, f.rajKapoor.ID, got.ID)
}

func TestResolverSearchesEveryVisibleType(t *testing.T) {
	f := newResolverFixture(t)
	resolver := NewResolver(f.store, ResolverOptions{})

	got, err := resolver.Resolve(context.Background(), ResolveRequest{Query: "Meera Shah", Scope: scopeOf(f.client)})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityGuest, got.Type)

	// Without an active client only clients are searched.
	_, err = resolver.Resolve(context.Background(), ResolveRequest{Query: "Meera Shah", Scope: domain.Scope{CompanyID: companyA}})
	var noMatch *domain.NoMatchError
	assert.ErrorAs(t, err, &noMatch)
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		query, name string
		want        float64
	}{
		{query: "raj kumar", name: "raj kumar", want: 1},
		{query: "raj", name: "raj kumar", want: 0.6 + 0.4*3.0/9.0},
		{query: "kumar raj", name: "raj kumar", want: 0.6 + 0.4*9.0/9.0},
		{query: "kum", name: "raj kumar", want: 0.3 + 0.4*3.0/9.0},
		{query: "raj kumar singh", name: "raj kumar", want: 0},
		{query: "meera", name: "raj kumar", want: 0},
		{query: "", name: "raj kumar", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.InDelta(t, tt.want, MatchScore(tt.query, tt.name), 1e-9)
		})
	}
}
