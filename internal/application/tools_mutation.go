package application

import (
	"context"
	"fmt"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

const defaultEventName = "Wedding"

func createClient(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs("partner1", "partner2", "wedding_date", "venue", "budget")
	fields["status"] = "planning"

	// Clients are company scoped: create with the client id cleared.
	run.scope = companyScope(run.scope)
	client, err := run.createPrimary(ctx, domain.EntityClient, fields)
	if err != nil {
		return err
	}
	focus := client.Ref()
	run.result.FocusClient = &focus
	run.line("client: %s", client.Name)

	clientScope := run.scope.WithClient(string(client.ID))
	event := map[string]any{
		"name":       defaultEventName,
		"event_type": "wedding",
		"is_default": true,
	}
	if date := run.args.String("wedding_date"); date != "" {
		event["date"] = date
	}
	if venue := run.args.String("venue"); venue != "" {
		event["venue"] = venue
	}
	if _, err := run.createCascade(ctx, EffectDefaultEvent, clientScope, domain.EntityEvent, event); err != nil {
		return err
	}

	share := 0.0
	if budget := run.args.Float("budget"); budget > 0 {
		share = budget / float64(len(budgetCategories))
	}
	for _, category := range budgetCategories {
		item := map[string]any{
			"category":   category,
			"estimated":  share,
			"actual":     0.0,
			"paid":       0.0,
			"is_default": true,
		}
		if _, err := run.createCascade(ctx, EffectBudgetScaffold, clientScope, domain.EntityBudgetItem, item); err != nil {
			return err
		}
	}
	return nil
}

func addEvent(ctx context.Context, run *toolRun) error {
	event, err := run.createPrimary(ctx, domain.EntityEvent, run.fieldsFromArgs("name", "date", "start_time", "venue"))
	if err != nil {
		return err
	}
	run.line("event: %s", event.Name)
	return nil
}

func addGuest(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs("name", "email", "phone", "side", "rsvp_status", "plus_ones", "dietary", "needs_hotel")
	if _, ok := fields["rsvp_status"]; !ok {
		fields["rsvp_status"] = "pending"
	}
	if _, ok := fields["plus_ones"]; !ok {
		fields["plus_ones"] = int64(0)
	}
	needsHotel := run.args.Bool("needs_hotel") || run.args.Has("hotel_name")
	fields["needs_hotel"] = needsHotel
	fields["gift_received"] = false

	guest, err := run.createPrimary(ctx, domain.EntityGuest, fields)
	if err != nil {
		return err
	}
	run.line("guest: %s", guest.Name)

	if !needsHotel {
		return nil
	}
	hotelName := run.args.String("hotel_name")
	if hotelName == "" {
		run.line("hotel booking: waiting for hotel details")
		return nil
	}
	booking := map[string]any{
		"guest_id":   string(guest.ID),
		"guest_name": guest.Name,
		"hotel_name": hotelName,
		"status":     "booked",
	}
	for _, key := range []string{"check_in", "check_out"} {
		if run.args.Has(key) {
			booking[key] = run.args[key]
		}
	}
	_, err = run.createCascade(ctx, EffectGuestHotel, run.scope, domain.EntityHotelBooking, booking)
	return err
}

var guestUpdateFields = []string{"name", "email", "phone", "side", "plus_ones", "dietary", "needs_hotel"}

func previewUpdateGuest(_ context.Context, run *toolRun) ([]string, error) {
	if len(run.fieldsFromArgs(guestUpdateFields...)) == 0 {
		return nil, &domain.SchemaValidationError{Tool: run.def.Name, Field: "details", Reason: domain.ReasonRequired}
	}
	return nil, nil
}

func updateGuest(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs(guestUpdateFields...)
	if len(fields) == 0 {
		return errNothingToUpdate
	}
	guest, err := run.update(ctx, domain.EntityGuest, run.args.Entity("guest").ID, fields)
	if err != nil {
		return err
	}
	run.line("guest: %s", guest.Name)
	return nil
}

func rsvpChange(guest domain.Entity, status string) string {
	before := guest.String("rsvp_status")
	if before == "" {
		before = "pending"
	}
	return fmt.Sprintf("%s: %s → %s", guest.Name, before, status)
}

func previewUpdateRSVP(_ context.Context, run *toolRun) ([]string, error) {
	guest := run.entity(run.args.Entity("guest"))
	return []string{rsvpChange(guest, run.args.String("rsvp_status"))}, nil
}

func updateRSVP(ctx context.Context, run *toolRun) error {
	status := run.args.String("rsvp_status")
	before := run.entity(run.args.Entity("guest"))
	if _, err := run.update(ctx, domain.EntityGuest, before.ID, map[string]any{"rsvp_status": status}); err != nil {
		return err
	}
	run.line("%s", rsvpChange(before, status))
	return nil
}

func previewBulkRSVP(_ context.Context, run *toolRun) ([]string, error) {
	status := run.args.String("rsvp_status")
	var lines []string
	for _, ref := range run.args.Entities("guests") {
		lines = append(lines, rsvpChange(run.entity(ref), status))
	}
	return lines, nil
}

func bulkUpdateRSVP(ctx context.Context, run *toolRun) error {
	status := run.args.String("rsvp_status")
	for _, ref := range run.args.Entities("guests") {
		before := run.entity(ref)
		if _, err := run.update(ctx, domain.EntityGuest, ref.ID, map[string]any{"rsvp_status": status}); err != nil {
			return err
		}
		run.line("%s", rsvpChange(before, status))
	}
	run.result.Primary = nil
	run.result.Plural = true
	return nil
}

func activeBookings(ctx context.Context, run *toolRun, guestID domain.EntityID) ([]domain.Entity, error) {
	bookings, err := run.query(ctx, domain.EntityHotelBooking, domain.Filter{Fields: map[string]any{"guest_id": string(guestID)}})
	if err != nil {
		return nil, err
	}
	active := bookings[:0]
	for _, booking := range bookings {
		if booking.String("status") != "cancelled" {
			active = append(active, booking)
		}
	}
	sortByName(active)
	return active, nil
}

func previewRemoveGuest(ctx context.Context, run *toolRun) ([]string, error) {
	bookings, err := activeBookings(ctx, run, run.args.Entity("guest").ID)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, booking := range bookings {
		lines = append(lines, "cancel hotel booking: "+booking.Name)
	}
	return lines, nil
}

func removeGuest(ctx context.Context, run *toolRun) error {
	guest := run.entity(run.args.Entity("guest"))
	bookings, err := activeBookings(ctx, run, guest.ID)
	if err != nil {
		return err
	}
	if err := run.remove(ctx, guest.Ref()); err != nil {
		return err
	}
	run.line("removed guest: %s", guest.Name)

	for _, booking := range bookings {
		if _, err := run.updateCascade(ctx, EffectCancelBookings, domain.EntityHotelBooking, booking.ID, map[string]any{"status": "cancelled"}); err != nil {
			return err
		}
	}
	return nil
}

func addVendor(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs("name", "category", "cost", "contact", "phone", "email")
	fields["paid"] = 0.0
	fields["status"] = "booked"
	vendor, err := run.createPrimary(ctx, domain.EntityVendor, fields)
	if err != nil {
		return err
	}
	run.line("vendor: %s", vendor.Name)

	if !run.args.Has("cost") {
		return nil
	}
	category := run.args.String("category")
	if category == "" {
		category = "vendors"
	}
	line := map[string]any{
		"category":    category,
		"description": vendor.Name,
		"estimated":   run.args.Float("cost"),
		"actual":      run.args.Float("cost"),
		"paid":        0.0,
		"vendor_id":   string(vendor.ID),
	}
	_, err = run.createCascade(ctx, EffectVendorBudgetLine, run.scope, domain.EntityBudgetItem, line)
	return err
}

func vendorBudgetLine(ctx context.Context, run *toolRun, vendorID domain.EntityID) (*domain.Entity, error) {
	lines, err := run.query(ctx, domain.EntityBudgetItem, domain.Filter{Fields: map[string]any{"vendor_id": string(vendorID)}})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	sortByName(lines)
	return &lines[0], nil
}

func previewPayment(_ context.Context, run *toolRun) ([]string, error) {
	vendor := run.entity(run.args.Entity("vendor"))
	paid := vendor.Number("paid")
	return []string{fmt.Sprintf("%s paid so far: %s → %s", vendor.Name, formatAmount(paid), formatAmount(paid+run.args.Float("amount")))}, nil
}

func recordPayment(ctx context.Context, run *toolRun) error {
	vendor := run.entity(run.args.Entity("vendor"))
	amount := run.args.Float("amount")
	paid := vendor.Number("paid") + amount
	fields := map[string]any{"paid": paid}
	if cost := vendor.Number("cost"); cost > 0 && paid >= cost {
		fields["status"] = "paid"
	}
	if _, err := run.update(ctx, domain.EntityVendor, vendor.ID, fields); err != nil {
		return err
	}
	run.line("%s paid: %s", vendor.Name, formatAmount(paid))

	line, err := vendorBudgetLine(ctx, run, vendor.ID)
	if err != nil || line == nil {
		return err
	}
	_, err = run.updateCascade(ctx, EffectPaymentBudgetLine, domain.EntityBudgetItem, line.ID, map[string]any{"paid": line.Number("paid") + amount})
	return err
}

func addBudgetItem(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs("category", "description", "estimated", "actual")
	fields["paid"] = 0.0
	item, err := run.createPrimary(ctx, domain.EntityBudgetItem, fields)
	if err != nil {
		return err
	}
	run.line("budget item: %s", item.Name)
	return nil
}

var budgetUpdateFields = []string{"description", "estimated", "actual", "paid"}

func previewUpdateBudgetItem(_ context.Context, run *toolRun) ([]string, error) {
	if len(run.fieldsFromArgs(budgetUpdateFields...)) == 0 {
		return nil, &domain.SchemaValidationError{Tool: run.def.Name, Field: "details", Reason: domain.ReasonRequired}
	}
	item := run.entity(run.args.Entity("budget_item"))
	var lines []string
	for _, key := range []string{"estimated", "actual", "paid"} {
		if run.args.Has(key) {
			lines = append(lines, fmt.Sprintf("%s %s: %s → %s", item.Name, key, formatAmount(item.Number(key)), formatAmount(run.args.Float(key))))
		}
	}
	return lines, nil
}

func updateBudgetItem(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs(budgetUpdateFields...)
	if len(fields) == 0 {
		return errNothingToUpdate
	}
	item, err := run.update(ctx, domain.EntityBudgetItem, run.args.Entity("budget_item").ID, fields)
	if err != nil {
		return err
	}
	run.line("budget item: %s", item.Name)
	return nil
}

func addTimelineItem(ctx context.Context, run *toolRun) error {
	item, err := run.createPrimary(ctx, domain.EntityTimelineItem, run.fieldsFromArgs("title", "start_time", "date", "duration_minutes", "location"))
	if err != nil {
		return err
	}
	run.line("timeline item: %s at %s", item.Name, item.String("start_time"))
	return nil
}

type timelineShift struct {
	item     domain.Entity
	from, to string
	date     string
}

func plannedShifts(ctx context.Context, run *toolRun) ([]timelineShift, error) {
	var items []domain.Entity
	if refs := run.args.Entities("items"); len(refs) > 0 {
		for _, ref := range refs {
			items = append(items, run.entity(ref))
		}
		sortTimeline(items)
	} else {
		all, err := timelineItems(ctx, run)
		if err != nil {
			return nil, err
		}
		items = all
	}

	minutes := int(run.args.Int("minutes"))
	var shifts []timelineShift
	for _, item := range items {
		from := item.String("start_time")
		if from == "" {
			continue
		}
		to, dayOffset, err := ShiftClock(from, minutes)
		if err != nil {
			return nil, err
		}
		shift := timelineShift{item: item, from: from, to: to, date: item.String("date")}
		if dayOffset != 0 && shift.date != "" {
			if parsed, err := ParseDate(shift.date, run.now); err == nil {
				shift.date = parsed.AddDate(0, 0, dayOffset).Format(DateLayout)
			}
		}
		shifts = append(shifts, shift)
	}
	if len(shifts) == 0 {
		return nil, &domain.NoMatchError{Reference: "timeline", Type: domain.EntityTimelineItem}
	}
	return shifts, nil
}

func (s timelineShift) String() string {
	return fmt.Sprintf("%s: %s → %s", s.item.Name, s.from, s.to)
}

func previewShiftTimeline(ctx context.Context, run *toolRun) ([]string, error) {
	shifts, err := plannedShifts(ctx, run)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(shifts))
	for _, shift := range shifts {
		lines = append(lines, shift.String())
	}
	return lines, nil
}

func shiftTimeline(ctx context.Context, run *toolRun) error {
	shifts, err := plannedShifts(ctx, run)
	if err != nil {
		return err
	}
	for _, shift := range shifts {
		fields := map[string]any{"start_time": shift.to}
		if shift.date != shift.item.String("date") {
			fields["date"] = shift.date
		}
		if _, err := run.update(ctx, domain.EntityTimelineItem, shift.item.ID, fields); err != nil {
			return err
		}
		run.line("%s", shift.String())
	}
	run.result.Primary = nil
	run.result.Plural = true
	return nil
}

func addHotelBooking(ctx context.Context, run *toolRun) error {
	guest := run.entity(run.args.Entity("guest"))
	fields := run.fieldsFromArgs("hotel_name", "check_in", "check_out", "room_type")
	fields["guest_id"] = string(guest.ID)
	fields["guest_name"] = guest.Name
	fields["status"] = "booked"
	booking, err := run.createPrimary(ctx, domain.EntityHotelBooking, fields)
	if err != nil {
		return err
	}
	run.line("hotel booking: %s", booking.Name)
	return nil
}

func recordGift(ctx context.Context, run *toolRun) error {
	fields := run.fieldsFromArgs("description", "value")
	fields["received"] = true
	fields["received_on"] = run.now.Format(DateLayout)
	fields["thank_you_sent"] = false

	var guest *domain.Entity
	if ref := run.args.Entity("guest"); !ref.IsZero() {
		g := run.entity(ref)
		guest = &g
		fields["guest_id"] = string(g.ID)
		fields["guest_name"] = g.Name
	}

	gift, err := run.createPrimary(ctx, domain.EntityGift, fields)
	if err != nil {
		return err
	}
	if guest == nil {
		run.line("gift: %s", gift.Name)
		return nil
	}
	run.line("gift: %s from %s", gift.Name, guest.Name)
	_, err = run.updateCascade(ctx, EffectGiftReceived, domain.EntityGuest, guest.ID, map[string]any{"gift_received": true})
	return err
}
