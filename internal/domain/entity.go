package domain

import (
	"fmt"
	"strings"
	"time"
)

type EntityType string

const (
	EntityClient       EntityType = "client"
	EntityGuest        EntityType = "guest"
	EntityVendor       EntityType = "vendor"
	EntityEvent        EntityType = "event"
	EntityBudgetItem   EntityType = "budget_item"
	EntityHotelBooking EntityType = "hotel_booking"
	EntityGift         EntityType = "gift"
	EntityTimelineItem EntityType = "timeline_item"
)

// EntityTypes lists every known type in a stable order.
var EntityTypes = []EntityType{
	EntityClient,
	EntityGuest,
	EntityVendor,
	EntityEvent,
	EntityBudgetItem,
	EntityHotelBooking,
	EntityGift,
	EntityTimelineItem,
}

func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ClientScoped reports whether records of this type belong to a single wedding.
func (t EntityType) ClientScoped() bool {
	return t.Valid() && t != EntityClient
}

func (t EntityType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

type EntityID string

// Scope restricts every store operation to one tenant and, optionally, one client.
type Scope struct {
	CompanyID string
	ClientID  string
}

func (s Scope) Validate() error {
	if strings.TrimSpace(s.CompanyID) == "" {
		return fmt.Errorf("%w: company id is required", ErrScopeViolation)
	}
	return nil
}

func (s Scope) WithClient(clientID string) Scope {
	s.ClientID = clientID
	return s
}

// Allows reports whether an entity is visible from this scope.
func (s Scope) Allows(e Entity) bool {
	if s.CompanyID == "" || e.CompanyID != s.CompanyID {
		return false
	}
	if e.Type.ClientScoped() && s.ClientID != "" && e.ClientID != s.ClientID {
		return false
	}
	return true
}

type Entity struct {
	Type      EntityType
	ID        EntityID
	CompanyID string
	ClientID  string
	Name      string
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Entity) Ref() EntityRef {
	return EntityRef{Type: e.Type, ID: e.ID, Name: e.Name}
}

func (e Entity) String(key string) string {
	value, ok := e.Fields[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func (e Entity) Number(key string) float64 {
	n, _ := NumberValue(e.Fields[key])
	return n
}

func (e Entity) Bool(key string) bool {
	b, _ := e.Fields[key].(bool)
	return b
}

// EntityRef is the minimal identity kept in conversation memory and results.
type EntityRef struct {
	Type EntityType
	ID   EntityID
	Name string
}

func (r EntityRef) IsZero() bool {
	return r.ID == ""
}

func (r EntityRef) Label() string {
	if r.Name == "" {
		return fmt.Sprintf("%s %s", r.Type.Label(), r.ID)
	}
	return r.Name
}

type ResolvedEntity struct {
	EntityRef
	Confidence float64
}

// Filter matches entities whose fields equal every given value.
type Filter struct {
	Fields map[string]any
}

func (f Filter) Matches(e Entity) bool {
	for key, want := range f.Fields {
		got, ok := e.Fields[key]
		if !ok {
			return false
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if an, ok := NumberValue(a); ok {
		bn, ok := NumberValue(b)
		return ok && an == bn
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// NumberValue converts the numeric representations produced by the stores and JSON decoding.
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// DisplayName derives the human-facing name of a record from its fields.
func DisplayName(t EntityType, fields map[string]any) string {
	str := func(key string) string {
		s, _ := fields[key].(string)
		return strings.TrimSpace(s)
	}

	switch t {
	case EntityClient:
		p1, p2 := str("partner1"), str("partner2")
		switch {
		case p1 != "" && p2 != "":
			return p1 + " & " + p2
		case p1 != "":
			return p1
		default:
			return str("name")
		}
	case EntityBudgetItem:
		if d := str("description"); d != "" {
			return d
		}
		return str("category")
	case EntityHotelBooking:
		if g := str("guest_name"); g != "" {
			return str("hotel_name") + " (" + g + ")"
		}
		return str("hotel_name")
	case EntityTimelineItem, EntityGift:
		if title := str("title"); title != "" {
			return title
		}
		return str("description")
	default:
		return str("name")
	}
}

// CloneFields copies a field map so callers never share mutable state with a store.
func CloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// MergeFields applies a partial update to base. A nil value removes the key.
func MergeFields(base, update map[string]any) map[string]any {
	out := CloneFields(base)
	for k, v := range update {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}
