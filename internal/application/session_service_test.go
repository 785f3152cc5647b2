package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports/mocks"
)

var planner = domain.Identity{CompanyID: companyA, UserID: "user-1"}

func TestSessionServiceStartCreatesAndResumes(t *testing.T) {
	service := NewSessionService(memory.NewSessionStore(), newFixedClock(t), 4)
	ctx := context.Background()

	created, err := service.Start(ctx, StartSessionCommand{Identity: planner})
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, companyA, created.CompanyID)
	assert.Equal(t, domain.LanguageEnglish, created.Language)
	assert.Equal(t, 4, created.RecentTurns.Capacity())
	assert.Equal(t, fixedNow, created.StartedAt)

	created.ActiveClientID = "c1"
	require.NoError(t, service.Save(ctx, created))

	resumed, err := service.Start(ctx, StartSessionCommand{SessionID: created.SessionID, Identity: planner})
	require.NoError(t, err)
	assert.Equal(t, "c1", resumed.ActiveClientID)
}

func TestSessionServiceHidesOtherTenantsSessions(t *testing.T) {
	service := NewSessionService(memory.NewSessionStore(), newFixedClock(t), 0)
	ctx := context.Background()

	created, err := service.Start(ctx, StartSessionCommand{SessionID: "shared", Identity: planner})
	require.NoError(t, err)

	intruder := domain.Identity{CompanyID: companyB, UserID: "user-1"}
	_, err = service.Start(ctx, StartSessionCommand{SessionID: created.SessionID, Identity: intruder})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = service.Authorize(ctx, created.SessionID, intruder)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	owned, err := service.Authorize(ctx, created.SessionID, planner)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, owned.SessionID)
}

func TestSessionServiceRejectsIncompleteIdentity(t *testing.T) {
	service := NewSessionService(memory.NewSessionStore(), newFixedClock(t), 0)

	_, err := service.Start(context.Background(), StartSessionCommand{Identity: domain.Identity{UserID: "user-1"}})
	assert.ErrorIs(t, err, domain.ErrScopeViolation)

	_, err = service.Start(context.Background(), StartSessionCommand{Identity: domain.Identity{CompanyID: companyA}})
	assert.ErrorIs(t, err, domain.ErrScopeViolation)
}

func TestSessionServiceEnd(t *testing.T) {
	service := NewSessionService(memory.NewSessionStore(), newFixedClock(t), 0)
	ctx := context.Background()

	created, err := service.Start(ctx, StartSessionCommand{Identity: planner})
	require.NoError(t, err)
	require.NoError(t, service.End(ctx, created.SessionID))

	_, err = service.Load(ctx, created.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, service.End(ctx, created.SessionID), domain.ErrSessionNotFound)
}

func TestSessionServiceSaveStampsUpdatedAt(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	clock := mocks.NewMockClock(t)
	later := fixedNow.Add(5 * time.Minute)
	clock.EXPECT().Now().Return(later).Once()
	service := NewSessionService(store, clock, 0)

	conversation := domain.NewConversationContext("s1", planner, 0, fixedNow)
	store.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(saved domain.ConversationContext) bool {
		return saved.SessionID == "s1" && saved.UpdatedAt.Equal(later)
	})).Return(nil).Once()

	require.NoError(t, service.Save(context.Background(), conversation))
}

func TestSessionServiceStartPropagatesStoreFailures(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	service := NewSessionService(store, newFixedClock(t), 0)

	store.EXPECT().Get(mockAnyContext(), "s1").Return(domain.ConversationContext{}, errors.New("disk unavailable")).Once()

	_, err := service.Start(context.Background(), StartSessionCommand{SessionID: "s1", Identity: planner})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk unavailable")
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResolveSessionIDIsStablePerIdentityAndLabel(t *testing.T) {
	service := NewSessionService(memory.NewSessionStore(), nil, 0)

	first := service.ResolveSessionID(planner, "default")
	assert.Equal(t, first, service.ResolveSessionID(planner, " default "))
	assert.Len(t, first, 40)
	assert.NotEqual(t, first, service.ResolveSessionID(planner, "vendors"))
	assert.NotEqual(t, first, service.ResolveSessionID(domain.Identity{CompanyID: companyB, UserID: "user-1"}, "default"))
}
