package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports/mocks"
)

type executorFixture struct {
	store    *memory.EntityStore
	executor *Executor
	client   domain.Entity
}

func newExecutorFixture(t *testing.T) executorFixture {
	t.Helper()

	clock := newFixedClock(t)
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)

	store := memory.NewEntityStore(clock)
	client := seedClient(t, store, companyA, map[string]any{"partner1": "Priya", "partner2": "Arjun", "budget": 600000.0})
	return executorFixture{store: store, executor: NewExecutor(store, catalog, clock), client: client}
}

func TestExecuteCreateClientReportsEveryCascade(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()

	result, err := f.executor.Execute(ctx, "create_client", domain.Args{
		"partner1":     "Ananya",
		"partner2":     "Rohan",
		"wedding_date": "2026-12-12",
		"venue":        "Jaipur",
		"budget":       300000.0,
	}, domain.Scope{CompanyID: companyA})
	require.NoError(t, err)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "Ananya & Rohan", result.Primary.Name)
	require.NotNil(t, result.FocusClient)
	assert.Equal(t, result.Primary.ID, result.FocusClient.ID)

	require.Len(t, result.Cascades, 1+len(budgetCategories))
	assert.Equal(t, EffectDefaultEvent, result.Cascades[0].Effect)
	assert.Equal(t, domain.EntityEvent, result.Cascades[0].Entity.Type)
	declared := map[string]bool{EffectDefaultEvent: true, EffectBudgetScaffold: true}
	for _, record := range result.Cascades[1:] {
		assert.Equal(t, EffectBudgetScaffold, record.Effect)
		assert.Equal(t, domain.EntityBudgetItem, record.Entity.Type)
		assert.True(t, declared[record.Effect])
	}

	scope := domain.Scope{CompanyID: companyA, ClientID: string(result.Primary.ID)}
	events := queryAll(t, f.store, scope, domain.EntityEvent)
	require.Len(t, events, 1)
	assert.Equal(t, "2026-12-12", events[0].String("date"))
	assert.Equal(t, "Jaipur", events[0].String("venue"))
	assert.True(t, events[0].Bool("is_default"))

	items := queryAll(t, f.store, scope, domain.EntityBudgetItem)
	require.Len(t, items, len(budgetCategories))
	for _, item := range items {
		assert.Equal(t, 50000.0, item.Number("estimated"))
	}
}

func TestExecuteFailureListsCompletedWrites(t *testing.T) {
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	store := mocks.NewMockEntityStore(t)
	executor := NewExecutor(store, catalog, newFixedClock(t))

	client := domain.Entity{Type: domain.EntityClient, ID: "c1", CompanyID: companyA, Name: "Ananya"}
	store.EXPECT().Create(mockAnyContext(), domain.Scope{CompanyID: companyA}, domain.EntityClient, mock.Anything).Return(client, nil).Once()
	store.EXPECT().Create(mockAnyContext(), domain.Scope{CompanyID: companyA, ClientID: "c1"}, domain.EntityEvent, mock.Anything).
		Return(domain.Entity{}, errors.New("disk full")).Once()

	result, err := executor.Execute(context.Background(), "create_client", domain.Args{"partner1": "Ananya"}, domain.Scope{CompanyID: companyA})

	var execErr *domain.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "create_client", execErr.Tool)
	require.Len(t, execErr.Completed, 1)
	assert.Equal(t, client.Ref(), execErr.Completed[0].Entity)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, result.Cascades)
}

func TestExecuteRequiresClientScope(t *testing.T) {
	f := newExecutorFixture(t)

	_, err := f.executor.Execute(context.Background(), "add_guest", domain.Args{"name": "Raj Kumar"}, domain.Scope{CompanyID: companyA})

	var execErr *domain.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, domain.ErrScopeViolation)
	assert.Empty(t, execErr.Completed)
	assert.Empty(t, queryAll(t, f.store, scopeOf(f.client), domain.EntityGuest))
}

func TestExecuteRejectsForeignReferences(t *testing.T) {
	f := newExecutorFixture(t)
	other := seedClient(t, f.store, companyA, map[string]any{"partner1": "Sara", "partner2": "Dev"})
	foreignGuest := seedEntity(t, f.store, other, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})

	_, err := f.executor.Execute(context.Background(), "add_hotel_booking", domain.Args{
		"guest":      foreignGuest.Ref(),
		"hotel_name": "Taj Lake Palace",
	}, scopeOf(f.client))

	assert.ErrorIs(t, err, domain.ErrScopeViolation)
	assert.Empty(t, queryAll(t, f.store, scopeOf(f.client), domain.EntityHotelBooking))
	assert.Empty(t, queryAll(t, f.store, scopeOf(other), domain.EntityHotelBooking))
}

func TestExecuteRejectsMismatchedReferenceType(t *testing.T) {
	f := newExecutorFixture(t)
	vendor := seedEntity(t, f.store, f.client, domain.EntityVendor, map[string]any{"name": "Lotus Caterers"})

	_, err := f.executor.Execute(context.Background(), "remove_guest", domain.Args{"guest": vendor.Ref()}, scopeOf(f.client))

	assert.ErrorIs(t, err, domain.ErrScopeViolation)
	assert.Len(t, queryAll(t, f.store, scopeOf(f.client), domain.EntityVendor), 1)
}

func TestAddGuestWithHotelCreatesBooking(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()

	waiting, err := f.executor.Execute(ctx, "add_guest", domain.Args{"name": "Raj Kumar", "needs_hotel": true}, scopeOf(f.client))
	require.NoError(t, err)
	assert.Empty(t, waiting.Cascades)
	assert.Equal(t, []string{"guest: Raj Kumar", "hotel booking: waiting for hotel details"}, waiting.Lines)

	booked, err := f.executor.Execute(ctx, "add_guest", domain.Args{
		"name":       "Meera Shah",
		"hotel_name": "Taj Lake Palace",
		"check_in":   "2026-12-11",
	}, scopeOf(f.client))
	require.NoError(t, err)
	require.Len(t, booked.Cascades, 1)
	assert.Equal(t, EffectGuestHotel, booked.Cascades[0].Effect)
	assert.Equal(t, "Taj Lake Palace (Meera Shah)", booked.Cascades[0].Entity.Name)

	guests := queryAll(t, f.store, scopeOf(f.client), domain.EntityGuest)
	require.Len(t, guests, 2)
	assert.Equal(t, "pending", guests[1].String("rsvp_status"))
	assert.True(t, guests[1].Bool("needs_hotel"))
}

func TestRemoveGuestCancelsBookings(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()
	guest := seedEntity(t, f.store, f.client, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})
	booking := seedEntity(t, f.store, f.client, domain.EntityHotelBooking, map[string]any{
		"guest_id":   string(guest.ID),
		"guest_name": guest.Name,
		"hotel_name": "Taj Lake Palace",
		"status":     "booked",
	})
	args := domain.Args{"guest": guest.Ref()}

	preview, err := f.executor.Preview(ctx, "remove_guest", args, scopeOf(f.client))
	require.NoError(t, err)
	assert.Equal(t, []string{"guest: Raj Kumar", "cancel hotel booking: Taj Lake Palace (Raj Kumar)"}, preview)
	assert.Len(t, queryAll(t, f.store, scopeOf(f.client), domain.EntityGuest), 1)

	result, err := f.executor.Execute(ctx, "remove_guest", args, scopeOf(f.client))
	require.NoError(t, err)
	assert.Equal(t, []domain.EntityRef{guest.Ref()}, result.Removed)
	require.Len(t, result.Cascades, 1)
	assert.Equal(t, EffectCancelBookings, result.Cascades[0].Effect)
	assert.Equal(t, booking.ID, result.Cascades[0].Entity.ID)

	assert.Empty(t, queryAll(t, f.store, scopeOf(f.client), domain.EntityGuest))
	bookings := queryAll(t, f.store, scopeOf(f.client), domain.EntityHotelBooking)
	require.Len(t, bookings, 1)
	assert.Equal(t, "cancelled", bookings[0].String("status"))
}

func TestShiftTimelinePreviewDoesNotWrite(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()
	seedEntity(t, f.store, f.client, domain.EntityTimelineItem, map[string]any{"title": "Reception", "start_time": "19:30", "date": "2026-12-12"})
	seedEntity(t, f.store, f.client, domain.EntityTimelineItem, map[string]any{"title": "Ceremony", "start_time": "16:00", "date": "2026-12-12"})
	seedEntity(t, f.store, f.client, domain.EntityTimelineItem, map[string]any{"title": "After party", "start_time": "23:45", "date": "2026-12-12"})
	args := domain.Args{"minutes": int64(30)}

	preview, err := f.executor.Preview(ctx, "shift_timeline", args, scopeOf(f.client))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"minutes: 30",
		"Ceremony: 16:00 → 16:30",
		"Reception: 19:30 → 20:00",
		"After party: 23:45 → 00:15",
	}, preview)
	for _, item := range queryAll(t, f.store, scopeOf(f.client), domain.EntityTimelineItem) {
		assert.NotEqual(t, "16:30", item.String("start_time"))
	}

	result, err := f.executor.Execute(ctx, "shift_timeline", args, scopeOf(f.client))
	require.NoError(t, err)
	assert.True(t, result.Plural)
	assert.Nil(t, result.Primary)
	assert.Len(t, result.Affected, 3)

	byTitle := map[string]domain.Entity{}
	for _, item := range queryAll(t, f.store, scopeOf(f.client), domain.EntityTimelineItem) {
		byTitle[item.Name] = item
	}
	assert.Equal(t, "16:30", byTitle["Ceremony"].String("start_time"))
	assert.Equal(t, "20:00", byTitle["Reception"].String("start_time"))
	assert.Equal(t, "00:15", byTitle["After party"].String("start_time"))
	assert.Equal(t, "2026-12-13", byTitle["After party"].String("date"))
}

func TestShiftTimelineWithoutItems(t *testing.T) {
	f := newExecutorFixture(t)

	_, err := f.executor.Preview(context.Background(), "shift_timeline", domain.Args{"minutes": int64(30)}, scopeOf(f.client))

	var noMatch *domain.NoMatchError
	assert.ErrorAs(t, err, &noMatch)
}

func TestVendorPaymentUpdatesBudgetLine(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()
	scope := scopeOf(f.client)

	added, err := f.executor.Execute(ctx, "add_vendor", domain.Args{"name": "Lotus Caterers", "category": "catering", "cost": 150000.0}, scope)
	require.NoError(t, err)
	require.Len(t, added.Cascades, 1)
	assert.Equal(t, EffectVendorBudgetLine, added.Cascades[0].Effect)

	vendor, err := f.store.Get(ctx, scope, domain.EntityVendor, added.Primary.ID)
	require.NoError(t, err)
	args := domain.Args{"vendor": vendor.Ref(), "amount": 50000.0}

	preview, err := f.executor.Preview(ctx, "record_payment", args, scope)
	require.NoError(t, err)
	assert.Contains(t, preview, "Lotus Caterers paid so far: 0 → 50,000")

	paid, err := f.executor.Execute(ctx, "record_payment", args, scope)
	require.NoError(t, err)
	require.Len(t, paid.Cascades, 1)
	assert.Equal(t, EffectPaymentBudgetLine, paid.Cascades[0].Effect)

	line, err := f.store.Get(ctx, scope, domain.EntityBudgetItem, added.Cascades[0].Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, line.Number("paid"))

	overview, err := f.executor.Execute(ctx, "get_budget_overview", domain.Args{}, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"total budget: 600,000",
		"estimated: 150,000",
		"committed: 150,000",
		"spent so far: 50,000",
		"remaining: 550,000",
		"catering: estimated 150,000, spent 50,000",
	}, overview.Lines)
}

func TestUpdateGuestPreviewNeedsChanges(t *testing.T) {
	f := newExecutorFixture(t)
	guest := seedEntity(t, f.store, f.client, domain.EntityGuest, map[string]any{"name": "Raj Kumar"})

	_, err := f.executor.Preview(context.Background(), "update_guest", domain.Args{"guest": guest.Ref()}, scopeOf(f.client))

	var schemaErr *domain.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "details", schemaErr.Field)
}

func TestRecordGiftMarksGuest(t *testing.T) {
	f := newExecutorFixture(t)
	guest := seedEntity(t, f.store, f.client, domain.EntityGuest, map[string]any{"name": "Raj Kumar", "gift_received": false})

	result, err := f.executor.Execute(context.Background(), "record_gift", domain.Args{
		"description": "Silver tea set",
		"guest":       guest.Ref(),
		"value":       12000.0,
	}, scopeOf(f.client))
	require.NoError(t, err)
	assert.Equal(t, []string{"gift: Silver tea set from Raj Kumar"}, result.Lines)
	require.Len(t, result.Cascades, 1)
	assert.Equal(t, EffectGiftReceived, result.Cascades[0].Effect)

	updated, err := f.store.Get(context.Background(), scopeOf(f.client), domain.EntityGuest, guest.ID)
	require.NoError(t, err)
	assert.True(t, updated.Bool("gift_received"))
}

func TestExecuteUnknownTool(t *testing.T) {
	f := newExecutorFixture(t)

	_, err := f.executor.Execute(context.Background(), "delete_everything", domain.Args{}, domain.Scope{CompanyID: companyA})

	var unknown *domain.UnknownToolError
	assert.ErrorAs(t, err, &unknown)
}
