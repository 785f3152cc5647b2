package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

func defaultHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list_clients":        {execute: listClients},
		"switch_client":       {execute: switchClient},
		"get_client_summary":  {execute: clientSummary},
		"search_guests":       {execute: searchGuests},
		"get_guest_stats":     {execute: guestStats},
		"get_budget_overview": {execute: budgetOverview},
		"list_vendors":        {execute: listVendors},
		"get_timeline":        {execute: timeline},
		"list_hotel_bookings": {execute: listHotelBookings},
		"list_gifts":          {execute: listGifts},
		"create_client":       {execute: createClient},
		"add_event":           {execute: addEvent},
		"add_guest":           {execute: addGuest},
		"update_guest":        {preview: previewUpdateGuest, execute: updateGuest},
		"update_rsvp":         {preview: previewUpdateRSVP, execute: updateRSVP},
		"bulk_update_rsvp":    {preview: previewBulkRSVP, execute: bulkUpdateRSVP},
		"remove_guest":        {preview: previewRemoveGuest, execute: removeGuest},
		"add_vendor":          {execute: addVendor},
		"record_payment":      {preview: previewPayment, execute: recordPayment},
		"add_budget_item":     {execute: addBudgetItem},
		"update_budget_item":  {preview: previewUpdateBudgetItem, execute: updateBudgetItem},
		"add_timeline_item":   {execute: addTimelineItem},
		"shift_timeline":      {preview: previewShiftTimeline, execute: shiftTimeline},
		"add_hotel_booking":   {execute: addHotelBooking},
		"record_gift":         {execute: recordGift},
	}
}

func sortByName(entities []domain.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Name != entities[j].Name {
			return entities[i].Name < entities[j].Name
		}
		return entities[i].ID < entities[j].ID
	})
}

func companyScope(scope domain.Scope) domain.Scope {
	return domain.Scope{CompanyID: scope.CompanyID}
}

func listClients(ctx context.Context, run *toolRun) error {
	clients, err := run.store.Query(ctx, companyScope(run.scope), domain.EntityClient, domain.Filter{})
	if err != nil {
		return fmt.Errorf("query clients: %w", err)
	}
	sort.SliceStable(clients, func(i, j int) bool {
		di, dj := clients[i].String("wedding_date"), clients[j].String("wedding_date")
		if di != dj {
			return di < dj
		}
		return clients[i].Name < clients[j].Name
	})

	for _, client := range clients {
		details := compactJoin(client.String("wedding_date"), client.String("venue"))
		if details == "" {
			run.line("%s", client.Name)
			continue
		}
		run.line("%s: %s", client.Name, details)
	}
	run.list(clients)
	return nil
}

func switchClient(_ context.Context, run *toolRun) error {
	ref := run.args.Entity("client")
	client := run.entity(ref)
	focus := client.Ref()
	run.result.FocusClient = &focus
	run.result.Affected = append(run.result.Affected, focus)
	if date := client.String("wedding_date"); date != "" {
		run.line("active wedding: %s (%s)", client.Name, date)
	} else {
		run.line("active wedding: %s", client.Name)
	}
	return nil
}

func loadScopeClient(ctx context.Context, run *toolRun) (domain.Entity, error) {
	client, err := run.store.Get(ctx, companyScope(run.scope), domain.EntityClient, domain.EntityID(run.scope.ClientID))
	if err != nil {
		return domain.Entity{}, fmt.Errorf("load client %s: %w", run.scope.ClientID, err)
	}
	return client, nil
}

func clientSummary(ctx context.Context, run *toolRun) error {
	client, err := loadScopeClient(ctx, run)
	if err != nil {
		return err
	}
	guests, err := run.query(ctx, domain.EntityGuest, domain.Filter{})
	if err != nil {
		return err
	}
	vendors, err := run.query(ctx, domain.EntityVendor, domain.Filter{})
	if err != nil {
		return err
	}
	events, err := run.query(ctx, domain.EntityEvent, domain.Filter{})
	if err != nil {
		return err
	}

	confirmed := 0
	for _, guest := range guests {
		if guest.String("rsvp_status") == "confirmed" {
			confirmed++
		}
	}

	run.line("wedding: %s", client.Name)
	if date := client.String("wedding_date"); date != "" {
		run.line("date: %s", date)
	}
	if venue := client.String("venue"); venue != "" {
		run.line("venue: %s", venue)
	}
	if budget := client.Number("budget"); budget > 0 {
		run.line("budget: %s", formatAmount(budget))
	}
	run.line("guests: %d (%d confirmed)", len(guests), confirmed)
	run.line("vendors: %d", len(vendors))
	run.line("events: %d", len(events))
	run.result.Affected = append(run.result.Affected, client.Ref())
	return nil
}

func searchGuests(ctx context.Context, run *toolRun) error {
	filter := domain.Filter{Fields: run.fieldsFromArgs("rsvp_status", "side", "needs_hotel")}
	guests, err := run.query(ctx, domain.EntityGuest, filter)
	if err != nil {
		return err
	}

	if query := normalizeName(run.args.String("query")); query != "" {
		matched := guests[:0]
		for _, guest := range guests {
			if MatchScore(query, normalizeName(guest.Name)) > 0 {
				matched = append(matched, guest)
			}
		}
		guests = matched
	}
	sortByName(guests)

	for _, guest := range guests {
		run.line("%s", guestLine(guest))
	}
	run.list(guests)
	return nil
}

func guestLine(guest domain.Entity) string {
	details := []string{guest.String("rsvp_status")}
	if side := guest.String("side"); side != "" {
		details = append(details, side+" side")
	}
	if plus := int(guest.Number("plus_ones")); plus > 0 {
		details = append(details, fmt.Sprintf("+%d", plus))
	}
	if guest.Bool("needs_hotel") {
		details = append(details, "needs hotel")
	}
	return fmt.Sprintf("%s (%s)", guest.Name, compactJoin(details...))
}

func guestStats(ctx context.Context, run *toolRun) error {
	guests, err := run.query(ctx, domain.EntityGuest, domain.Filter{})
	if err != nil {
		return err
	}

	counts := map[string]int{}
	headcount, hotel := 0, 0
	for _, guest := range guests {
		status := guest.String("rsvp_status")
		if status == "" {
			status = "pending"
		}
		counts[status]++
		headcount += 1 + int(guest.Number("plus_ones"))
		if guest.Bool("needs_hotel") {
			hotel++
		}
	}

	run.line("guests: %d", len(guests))
	for _, status := range rsvpStatuses {
		run.line("%s: %d", status, counts[status])
	}
	run.line("headcount with plus-ones: %d", headcount)
	run.line("needing a hotel: %d", hotel)
	return nil
}

func budgetOverview(ctx context.Context, run *toolRun) error {
	client, err := loadScopeClient(ctx, run)
	if err != nil {
		return err
	}
	items, err := run.query(ctx, domain.EntityBudgetItem, domain.Filter{})
	if err != nil {
		return err
	}

	type totals struct{ estimated, actual, paid float64 }
	byCategory := map[string]*totals{}
	var categories []string
	var all totals
	for _, item := range items {
		category := item.String("category")
		t, ok := byCategory[category]
		if !ok {
			t = &totals{}
			byCategory[category] = t
			categories = append(categories, category)
		}
		t.estimated += item.Number("estimated")
		t.actual += item.Number("actual")
		t.paid += item.Number("paid")
		all.estimated += item.Number("estimated")
		all.actual += item.Number("actual")
		all.paid += item.Number("paid")
	}
	sort.Strings(categories)

	budget := client.Number("budget")
	if budget > 0 {
		run.line("total budget: %s", formatAmount(budget))
	}
	run.line("estimated: %s", formatAmount(all.estimated))
	run.line("committed: %s", formatAmount(all.actual))
	run.line("spent so far: %s", formatAmount(all.paid))
	if budget > 0 {
		run.line("remaining: %s", formatAmount(budget-all.paid))
	}
	for _, category := range categories {
		t := byCategory[category]
		run.line("%s: estimated %s, spent %s", category, formatAmount(t.estimated), formatAmount(t.paid))
	}
	return nil
}

func listVendors(ctx context.Context, run *toolRun) error {
	vendors, err := run.query(ctx, domain.EntityVendor, domain.Filter{})
	if err != nil {
		return err
	}
	if category := strings.ToLower(run.args.String("category")); category != "" {
		matched := vendors[:0]
		for _, vendor := range vendors {
			if strings.ToLower(vendor.String("category")) == category {
				matched = append(matched, vendor)
			}
		}
		vendors = matched
	}
	sortByName(vendors)

	for _, vendor := range vendors {
		details := []string{}
		if category := vendor.String("category"); category != "" {
			details = append(details, category)
		}
		if cost := vendor.Number("cost"); cost > 0 {
			details = append(details, "cost "+formatAmount(cost))
		}
		if paid := vendor.Number("paid"); paid > 0 {
			details = append(details, "paid "+formatAmount(paid))
		}
		if len(details) == 0 {
			run.line("%s", vendor.Name)
			continue
		}
		run.line("%s (%s)", vendor.Name, compactJoin(details...))
	}
	run.list(vendors)
	return nil
}

func timelineItems(ctx context.Context, run *toolRun) ([]domain.Entity, error) {
	filter := domain.Filter{Fields: run.fieldsFromArgs("date")}
	items, err := run.query(ctx, domain.EntityTimelineItem, filter)
	if err != nil {
		return nil, err
	}
	sortTimeline(items)
	return items, nil
}

func sortTimeline(items []domain.Entity) {
	sort.SliceStable(items, func(i, j int) bool {
		ki := items[i].String("date") + " " + items[i].String("start_time")
		kj := items[j].String("date") + " " + items[j].String("start_time")
		if ki != kj {
			return ki < kj
		}
		return items[i].Name < items[j].Name
	})
}

func timeline(ctx context.Context, run *toolRun) error {
	items, err := timelineItems(ctx, run)
	if err != nil {
		return err
	}
	for _, item := range items {
		line := compactJoin(item.String("date"), item.String("start_time"))
		line = strings.TrimSpace(line + " " + item.Name)
		if location := item.String("location"); location != "" {
			line += " @ " + location
		}
		run.line("%s", line)
	}
	run.list(items)
	return nil
}

func listHotelBookings(ctx context.Context, run *toolRun) error {
	bookings, err := run.query(ctx, domain.EntityHotelBooking, domain.Filter{})
	if err != nil {
		return err
	}
	sortByName(bookings)
	for _, booking := range bookings {
		stay := ""
		if in, out := booking.String("check_in"), booking.String("check_out"); in != "" || out != "" {
			stay = fmt.Sprintf(" %s → %s", in, out)
		}
		run.line("%s:%s %s", booking.Name, stay, booking.String("status"))
	}
	run.list(bookings)
	return nil
}

func listGifts(ctx context.Context, run *toolRun) error {
	gifts, err := run.query(ctx, domain.EntityGift, domain.Filter{Fields: run.fieldsFromArgs("received")})
	if err != nil {
		return err
	}
	sortByName(gifts)
	for _, gift := range gifts {
		line := gift.Name
		if from := gift.String("guest_name"); from != "" {
			line += " from " + from
		}
		if value := gift.Number("value"); value > 0 {
			line += " (" + formatAmount(value) + ")"
		}
		if gift.Bool("thank_you_sent") {
			line += ", thanked"
		}
		run.line("%s", line)
	}
	run.list(gifts)
	return nil
}

func compactJoin(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
