package application

import "github.com/bnema/weddingflow-assistant/internal/domain"

// Cascade effect descriptions. They are shown verbatim in previews and
// attached to every cascade record the executor writes.
const (
	EffectDefaultEvent      = "creates the default wedding event on the wedding date"
	EffectBudgetScaffold    = "creates the default budget categories (venue, catering, decor, photography, attire, entertainment), splitting the total budget when given"
	EffectGuestHotel        = "will create hotel booking when hotel details are provided"
	EffectCancelBookings    = "cancels the guest's hotel bookings"
	EffectVendorBudgetLine  = "creates a budget line item for the vendor's cost when cost is given"
	EffectPaymentBudgetLine = "updates the paid amount on the vendor's budget line"
	EffectGiftReceived      = "marks the giving guest's gift as received"
)

var (
	rsvpStatuses     = []string{"pending", "confirmed", "declined", "maybe"}
	guestSides       = []string{"bride", "groom", "both"}
	budgetCategories = []string{"venue", "catering", "decor", "photography", "attire", "entertainment"}
)

func clientParam(required bool) domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "client",
		Type:        domain.ParamEntity,
		EntityType:  domain.EntityClient,
		Required:    required,
		Description: "Wedding (client) to act on. Defaults to the active wedding.",
	}
}

func DefaultToolDefinitions() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        "list_clients",
			Description: "List every wedding client of the company.",
			Kind:        domain.ToolQuery,
		},
		{
			Name:        "switch_client",
			Description: "Make a wedding the active one for this conversation.",
			Kind:        domain.ToolQuery,
			Params:      []domain.ParamSpec{clientParam(true)},
		},
		{
			Name:         "get_client_summary",
			Description:  "Summarize a wedding: couple, date, venue, budget, guest and vendor counts.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params:       []domain.ParamSpec{clientParam(false)},
		},
		{
			Name:         "search_guests",
			Description:  "Find guests by name or by RSVP status, side or hotel need.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "query", Type: domain.ParamString, Description: "Part of a guest name."},
				{Name: "rsvp_status", Type: domain.ParamEnum, Enum: rsvpStatuses},
				{Name: "side", Type: domain.ParamEnum, Enum: guestSides},
				{Name: "needs_hotel", Type: domain.ParamBoolean},
				clientParam(false),
			},
		},
		{
			Name:         "get_guest_stats",
			Description:  "Count guests by RSVP status, including plus-ones and hotel needs.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params:       []domain.ParamSpec{clientParam(false)},
		},
		{
			Name:         "get_budget_overview",
			Description:  "Total budget, estimated, spent and remaining amounts per category.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params:       []domain.ParamSpec{clientParam(false)},
		},
		{
			Name:         "list_vendors",
			Description:  "List vendors, optionally by category.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "category", Type: domain.ParamString},
				clientParam(false),
			},
		},
		{
			Name:         "get_timeline",
			Description:  "Show the day-of timeline in start-time order.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "date", Type: domain.ParamDate, Description: "Only items on this date."},
				clientParam(false),
			},
		},
		{
			Name:         "list_hotel_bookings",
			Description:  "List guest hotel bookings.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params:       []domain.ParamSpec{clientParam(false)},
		},
		{
			Name:         "list_gifts",
			Description:  "List recorded gifts.",
			Kind:         domain.ToolQuery,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "received", Type: domain.ParamBoolean},
				clientParam(false),
			},
		},
		{
			Name:        "create_client",
			Description: "Create a new wedding client.",
			Kind:        domain.ToolMutation,
			Params: []domain.ParamSpec{
				{Name: "partner1", Type: domain.ParamString, Required: true, Rules: "max=100"},
				{Name: "partner2", Type: domain.ParamString, Rules: "max=100"},
				{Name: "wedding_date", Type: domain.ParamDate},
				{Name: "venue", Type: domain.ParamString},
				{Name: "budget", Type: domain.ParamNumber, Rules: "gte=0"},
			},
			CascadeEffects: []string{EffectDefaultEvent, EffectBudgetScaffold},
		},
		{
			Name:         "add_event",
			Description:  "Add an event (sangeet, ceremony, reception...) to the wedding.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "name", Type: domain.ParamString, Required: true, Rules: "max=200"},
				{Name: "date", Type: domain.ParamDate},
				{Name: "start_time", Type: domain.ParamTime},
				{Name: "venue", Type: domain.ParamString},
				clientParam(false),
			},
		},
		{
			Name:         "add_guest",
			Description:  "Add a guest to the wedding guest list.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "name", Type: domain.ParamString, Required: true, Rules: "max=200"},
				{Name: "email", Type: domain.ParamString, Rules: "omitempty,email"},
				{Name: "phone", Type: domain.ParamString},
				{Name: "side", Type: domain.ParamEnum, Enum: guestSides},
				{Name: "rsvp_status", Type: domain.ParamEnum, Enum: rsvpStatuses},
				{Name: "plus_ones", Type: domain.ParamInteger, Rules: "gte=0,lte=20"},
				{Name: "dietary", Type: domain.ParamString},
				{Name: "needs_hotel", Type: domain.ParamBoolean},
				{Name: "hotel_name", Type: domain.ParamString},
				{Name: "check_in", Type: domain.ParamDate},
				{Name: "check_out", Type: domain.ParamDate},
				clientParam(false),
			},
			CascadeEffects: []string{EffectGuestHotel},
		},
		{
			Name:         "update_guest",
			Description:  "Change a guest's details.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "guest", Type: domain.ParamEntity, EntityType: domain.EntityGuest, Required: true},
				{Name: "name", Type: domain.ParamString, Rules: "max=200"},
				{Name: "email", Type: domain.ParamString, Rules: "omitempty,email"},
				{Name: "phone", Type: domain.ParamString},
				{Name: "side", Type: domain.ParamEnum, Enum: guestSides},
				{Name: "plus_ones", Type: domain.ParamInteger, Rules: "gte=0,lte=20"},
				{Name: "dietary", Type: domain.ParamString},
				{Name: "needs_hotel", Type: domain.ParamBoolean},
				clientParam(false),
			},
		},
		{
			Name:         "update_rsvp",
			Description:  "Set one guest's RSVP status.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "guest", Type: domain.ParamEntity, EntityType: domain.EntityGuest, Required: true},
				{Name: "rsvp_status", Type: domain.ParamEnum, Enum: rsvpStatuses, Required: true},
				clientParam(false),
			},
		},
		{
			Name:         "bulk_update_rsvp",
			Description:  "Set the RSVP status of several guests at once.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "guests", Type: domain.ParamEntityList, EntityType: domain.EntityGuest, Required: true},
				{Name: "rsvp_status", Type: domain.ParamEnum, Enum: rsvpStatuses, Required: true},
				clientParam(false),
			},
		},
		{
			Name:         "remove_guest",
			Description:  "Remove a guest from the guest list.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "guest", Type: domain.ParamEntity, EntityType: domain.EntityGuest, Required: true},
				clientParam(false),
			},
			CascadeEffects: []string{EffectCancelBookings},
		},
		{
			Name:         "add_vendor",
			Description:  "Add a vendor (caterer, photographer, decorator...).",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "name", Type: domain.ParamString, Required: true, Rules: "max=200"},
				{Name: "category", Type: domain.ParamString},
				{Name: "cost", Type: domain.ParamNumber, Rules: "gte=0"},
				{Name: "contact", Type: domain.ParamString},
				{Name: "phone", Type: domain.ParamString},
				{Name: "email", Type: domain.ParamString, Rules: "omitempty,email"},
				clientParam(false),
			},
			CascadeEffects: []string{EffectVendorBudgetLine},
		},
		{
			Name:         "record_payment",
			Description:  "Record a payment made to a vendor.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "vendor", Type: domain.ParamEntity, EntityType: domain.EntityVendor, Required: true},
				{Name: "amount", Type: domain.ParamNumber, Required: true, Rules: "gt=0"},
				clientParam(false),
			},
			CascadeEffects: []string{EffectPaymentBudgetLine},
		},
		{
			Name:         "add_budget_item",
			Description:  "Add a budget line item.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "category", Type: domain.ParamString, Required: true},
				{Name: "description", Type: domain.ParamString},
				{Name: "estimated", Type: domain.ParamNumber, Rules: "gte=0"},
				{Name: "actual", Type: domain.ParamNumber, Rules: "gte=0"},
				clientParam(false),
			},
		},
		{
			Name:         "update_budget_item",
			Description:  "Change the amounts or description of a budget line item.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "budget_item", Type: domain.ParamEntity, EntityType: domain.EntityBudgetItem, Required: true},
				{Name: "description", Type: domain.ParamString},
				{Name: "estimated", Type: domain.ParamNumber, Rules: "gte=0"},
				{Name: "actual", Type: domain.ParamNumber, Rules: "gte=0"},
				{Name: "paid", Type: domain.ParamNumber, Rules: "gte=0"},
				clientParam(false),
			},
		},
		{
			Name:         "add_timeline_item",
			Description:  "Add an item to the day-of timeline.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "title", Type: domain.ParamString, Required: true, Rules: "max=200"},
				{Name: "start_time", Type: domain.ParamTime, Required: true},
				{Name: "date", Type: domain.ParamDate},
				{Name: "duration_minutes", Type: domain.ParamInteger, Rules: "gte=0,lte=1440"},
				{Name: "location", Type: domain.ParamString},
				clientParam(false),
			},
		},
		{
			Name:         "shift_timeline",
			Description:  "Move timeline items later (positive minutes) or earlier (negative minutes). Without items, every item moves.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "minutes", Type: domain.ParamInteger, Required: true, Rules: "ne=0,gte=-1440,lte=1440"},
				{Name: "items", Type: domain.ParamEntityList, EntityType: domain.EntityTimelineItem},
				{Name: "date", Type: domain.ParamDate, Description: "Only items on this date."},
				clientParam(false),
			},
		},
		{
			Name:         "add_hotel_booking",
			Description:  "Book a hotel room for a guest.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "guest", Type: domain.ParamEntity, EntityType: domain.EntityGuest, Required: true},
				{Name: "hotel_name", Type: domain.ParamString, Required: true},
				{Name: "check_in", Type: domain.ParamDate},
				{Name: "check_out", Type: domain.ParamDate},
				{Name: "room_type", Type: domain.ParamString},
				clientParam(false),
			},
		},
		{
			Name:         "record_gift",
			Description:  "Record a gift received from a guest.",
			Kind:         domain.ToolMutation,
			ClientScoped: true,
			Params: []domain.ParamSpec{
				{Name: "description", Type: domain.ParamString, Required: true},
				{Name: "guest", Type: domain.ParamEntity, EntityType: domain.EntityGuest},
				{Name: "value", Type: domain.ParamNumber, Rules: "gte=0"},
				clientParam(false),
			},
			CascadeEffects: []string{EffectGiftReceived},
		},
	}
}
