package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

func bindRaw(t *testing.T, tool, raw string) (domain.Args, error) {
	t.Helper()

	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	def, err := catalog.Get(tool)
	require.NoError(t, err)

	decoded, err := DecodeArguments(json.RawMessage(raw))
	require.NoError(t, err)
	return NewArgumentBinder().Bind(def, decoded, fixedNow)
}

func TestBindCoercesArguments(t *testing.T) {
	args, err := bindRaw(t, "add_guest", `{
		"name": " Raj Kumar ",
		"plus_ones": 2,
		"needs_hotel": "yes",
		"side": "Groom",
		"check_in": "next saturday",
		"dietary": "",
		"unknown": "dropped"
	}`)
	require.NoError(t, err)

	assert.Equal(t, domain.Args{
		"name":        "Raj Kumar",
		"plus_ones":   int64(2),
		"needs_hotel": true,
		"side":        "groom",
		"check_in":    "2026-03-07",
	}, args)
}

func TestBindParsesAmountsAndTimes(t *testing.T) {
	vendor, err := bindRaw(t, "add_vendor", `{"name": "Lotus Caterers", "cost": "₹1,50,000"}`)
	require.NoError(t, err)
	assert.Equal(t, 150000.0, vendor["cost"])

	item, err := bindRaw(t, "add_timeline_item", `{"title": "Baraat", "start_time": "4pm", "duration_minutes": "45"}`)
	require.NoError(t, err)
	assert.Equal(t, "16:00", item["start_time"])
	assert.Equal(t, int64(45), item["duration_minutes"])
}

func TestBindKeepsReferencesAsText(t *testing.T) {
	args, err := bindRaw(t, "bulk_update_rsvp", `{"guests": ["Raj", "", "Meera"], "rsvp_status": "confirmed", "client": "Priya"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Raj", "Meera"}, args["guests"])
	assert.Equal(t, "Priya", args["client"])

	single, err := bindRaw(t, "update_rsvp", `{"guest": "them", "rsvp_status": "declined"}`)
	require.NoError(t, err)
	assert.Equal(t, "them", single["guest"])
}

func TestBindRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		raw    string
		field  string
		reason string
	}{
		{name: "fractional integer", tool: "add_guest", raw: `{"name": "Raj", "plus_ones": 2.5}`, field: "plus_ones", reason: "expected a whole number"},
		{name: "too many plus ones", tool: "add_guest", raw: `{"name": "Raj", "plus_ones": 30}`, field: "plus_ones", reason: "must be at most 20"},
		{name: "bad email", tool: "add_guest", raw: `{"name": "Raj", "email": "raj-at-example"}`, field: "email", reason: "must be an email address"},
		{name: "unknown enum", tool: "add_guest", raw: `{"name": "Raj", "side": "aunt"}`, field: "side", reason: "must be one of bride, groom, both"},
		{name: "bad boolean", tool: "add_guest", raw: `{"name": "Raj", "needs_hotel": "perhaps"}`, field: "needs_hotel", reason: "expected true or false"},
		{name: "negative budget", tool: "create_client", raw: `{"partner1": "Priya", "budget": -5}`, field: "budget", reason: "must be at least 0"},
		{name: "zero payment", tool: "record_payment", raw: `{"vendor": "Lotus", "amount": 0}`, field: "amount", reason: "must be greater than 0"},
		{name: "zero shift", tool: "shift_timeline", raw: `{"minutes": 0}`, field: "minutes", reason: "must not be 0"},
		{name: "not a number", tool: "add_vendor", raw: `{"name": "Lotus", "cost": "a lot"}`, field: "cost", reason: "expected a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bindRaw(t, tt.tool, tt.raw)

			var schemaErr *domain.SchemaValidationError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.tool, schemaErr.Tool)
			assert.Equal(t, tt.field, schemaErr.Field)
			assert.Equal(t, tt.reason, schemaErr.Reason)
			assert.False(t, schemaErr.Missing())
		})
	}
}

func TestBindReportsUnparseableDates(t *testing.T) {
	_, err := bindRaw(t, "create_client", `{"partner1": "Priya", "wedding_date": "05/06/2026"}`)

	var dateErr *domain.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "05/06/2026", dateErr.Expression)
}

func TestCheckRequired(t *testing.T) {
	catalog, err := NewDefaultCatalog()
	require.NoError(t, err)
	binder := NewArgumentBinder()

	addGuest, err := catalog.Get("add_guest")
	require.NoError(t, err)
	err = binder.CheckRequired(addGuest, domain.Args{"side": "bride"})
	var schemaErr *domain.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "name", schemaErr.Field)
	assert.True(t, schemaErr.Missing())

	bulk, err := catalog.Get("bulk_update_rsvp")
	require.NoError(t, err)
	err = binder.CheckRequired(bulk, domain.Args{"guests": []domain.EntityRef{}, "rsvp_status": "confirmed"})
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "guests", schemaErr.Field)

	require.NoError(t, binder.CheckRequired(addGuest, domain.Args{"name": "Raj"}))
}

func TestDecodeArguments(t *testing.T) {
	empty, err := DecodeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	decoded, err := DecodeArguments(json.RawMessage(`{"amount": 1500}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("1500"), decoded["amount"])

	_, err = DecodeArguments(json.RawMessage(`{"amount":`))
	require.Error(t, err)
}
