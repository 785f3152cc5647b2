package domain

import "sort"

type MemoryRole string

const (
	RoleLastClient       MemoryRole = "lastClient"
	RoleLastGuest        MemoryRole = "lastGuest"
	RoleLastVendor       MemoryRole = "lastVendor"
	RoleLastEvent        MemoryRole = "lastEvent"
	RoleLastBudgetItem   MemoryRole = "lastBudgetItem"
	RoleLastHotelBooking MemoryRole = "lastHotelBooking"
	RoleLastGift         MemoryRole = "lastGift"
	RoleLastTimelineItem MemoryRole = "lastTimelineItem"

	RoleLastPluralGuests        MemoryRole = "lastPluralGuests"
	RoleLastPluralVendors       MemoryRole = "lastPluralVendors"
	RoleLastPluralTimelineItems MemoryRole = "lastPluralTimelineItems"
	RoleLastPluralBudgetItems   MemoryRole = "lastPluralBudgetItems"
	RoleLastPluralClients       MemoryRole = "lastPluralClients"
)

var singularRoles = map[EntityType]MemoryRole{
	EntityClient:       RoleLastClient,
	EntityGuest:        RoleLastGuest,
	EntityVendor:       RoleLastVendor,
	EntityEvent:        RoleLastEvent,
	EntityBudgetItem:   RoleLastBudgetItem,
	EntityHotelBooking: RoleLastHotelBooking,
	EntityGift:         RoleLastGift,
	EntityTimelineItem: RoleLastTimelineItem,
}

var pluralRoles = map[EntityType]MemoryRole{
	EntityClient:       RoleLastPluralClients,
	EntityGuest:        RoleLastPluralGuests,
	EntityVendor:       RoleLastPluralVendors,
	EntityTimelineItem: RoleLastPluralTimelineItems,
	EntityBudgetItem:   RoleLastPluralBudgetItems,
}

func SingularRole(t EntityType) (MemoryRole, bool) {
	role, ok := singularRoles[t]
	return role, ok
}

func PluralRole(t EntityType) (MemoryRole, bool) {
	role, ok := pluralRoles[t]
	return role, ok
}

// MemoryEntry is one role's last-written value. Plural entries hold a snapshot
// taken when they were written; they are never refreshed from the store.
type MemoryEntry struct {
	Role     MemoryRole
	Plural   bool
	Entities []EntityRef
	Seq      uint64
}

// EntityMemory maps semantic roles to the most recently referenced entities.
// Writes are last-write-wins per role; Seq orders writes across roles.
type EntityMemory struct {
	entries map[MemoryRole]MemoryEntry
	seq     uint64
}

func NewEntityMemory() *EntityMemory {
	return &EntityMemory{entries: map[MemoryRole]MemoryEntry{}}
}

func (m *EntityMemory) Remember(role MemoryRole, ref EntityRef) {
	m.seq++
	m.entries[role] = MemoryEntry{Role: role, Entities: []EntityRef{ref}, Seq: m.seq}
}

func (m *EntityMemory) RememberPlural(role MemoryRole, refs []EntityRef) {
	m.seq++
	m.entries[role] = MemoryEntry{Role: role, Plural: true, Entities: append([]EntityRef(nil), refs...), Seq: m.seq}
}

// RememberEntity records ref under the singular role of its type.
func (m *EntityMemory) RememberEntity(ref EntityRef) {
	if role, ok := SingularRole(ref.Type); ok {
		m.Remember(role, ref)
	}
}

// RememberGroup records refs under the plural role of their shared type.
func (m *EntityMemory) RememberGroup(t EntityType, refs []EntityRef) {
	if role, ok := PluralRole(t); ok && len(refs) > 0 {
		m.RememberPlural(role, refs)
	}
}

func (m *EntityMemory) Recall(role MemoryRole) (EntityRef, bool) {
	entry, ok := m.entries[role]
	if !ok || entry.Plural || len(entry.Entities) == 0 {
		return EntityRef{}, false
	}
	return entry.Entities[0], true
}

func (m *EntityMemory) RecallPlural(role MemoryRole) ([]EntityRef, bool) {
	entry, ok := m.entries[role]
	if !ok || !entry.Plural || len(entry.Entities) == 0 {
		return nil, false
	}
	return append([]EntityRef(nil), entry.Entities...), true
}

// MostRecentSingular returns the singular entry written last across all roles.
func (m *EntityMemory) MostRecentSingular() (EntityRef, bool) {
	entry, ok := m.mostRecent(false)
	if !ok {
		return EntityRef{}, false
	}
	return entry.Entities[0], true
}

// MostRecentPlural returns the plural snapshot written last across all roles.
func (m *EntityMemory) MostRecentPlural() ([]EntityRef, bool) {
	entry, ok := m.mostRecent(true)
	if !ok {
		return nil, false
	}
	return append([]EntityRef(nil), entry.Entities...), true
}

func (m *EntityMemory) mostRecent(plural bool) (MemoryEntry, bool) {
	var best MemoryEntry
	found := false
	for _, entry := range m.entries {
		if entry.Plural != plural || len(entry.Entities) == 0 {
			continue
		}
		if !found || entry.Seq > best.Seq {
			best = entry
			found = true
		}
	}
	return best, found
}

// Contains reports whether id appears in any role.
func (m *EntityMemory) Contains(id EntityID) bool {
	if m == nil {
		return false
	}
	for _, entry := range m.entries {
		for _, ref := range entry.Entities {
			if ref.ID == id {
				return true
			}
		}
	}
	return false
}

// Forget removes id from every role, dropping roles left empty.
func (m *EntityMemory) Forget(id EntityID) {
	for role, entry := range m.entries {
		kept := entry.Entities[:0:0]
		for _, ref := range entry.Entities {
			if ref.ID != id {
				kept = append(kept, ref)
			}
		}
		if len(kept) == 0 {
			delete(m.entries, role)
			continue
		}
		entry.Entities = kept
		m.entries[role] = entry
	}
}

// Entries returns every entry ordered by role name, for deterministic output.
func (m *EntityMemory) Entries() []MemoryEntry {
	if m == nil {
		return nil
	}
	out := make([]MemoryEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		entry.Entities = append([]EntityRef(nil), entry.Entities...)
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out
}

func (m *EntityMemory) Clone() *EntityMemory {
	if m == nil {
		return nil
	}
	return RestoreEntityMemory(m.Entries())
}

func RestoreEntityMemory(entries []MemoryEntry) *EntityMemory {
	m := NewEntityMemory()
	for _, entry := range entries {
		entry.Entities = append([]EntityRef(nil), entry.Entities...)
		m.entries[entry.Role] = entry
		if entry.Seq > m.seq {
			m.seq = entry.Seq
		}
	}
	return m
}
