package toml

import "fmt"

const currentSchemaVersion = 1

func defaultVersion(version int) int {
	if version == 0 {
		return currentSchemaVersion
	}
	return version
}

func validateVersion(kind string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, currentSchemaVersion)
	}

	return nil
}

type entitiesFileSchema struct {
	Version  int            `toml:"version"`
	Entities []entitySchema `toml:"entities"`
}

type entitySchema struct {
	Type      string         `toml:"type"`
	ID        string         `toml:"id"`
	CompanyID string         `toml:"company_id"`
	ClientID  string         `toml:"client_id,omitempty"`
	Name      string         `toml:"name"`
	Fields    map[string]any `toml:"fields,omitempty"`
	CreatedAt string         `toml:"created_at"`
	UpdatedAt string         `toml:"updated_at"`
}

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

type sessionSchema struct {
	ID             string               `toml:"id"`
	CompanyID      string               `toml:"company_id"`
	UserID         string               `toml:"user_id"`
	ActiveClientID string               `toml:"active_client_id,omitempty"`
	Language       string               `toml:"language"`
	Turn           int                  `toml:"turn"`
	MaxTurns       int                  `toml:"max_turns"`
	StartedAt      string               `toml:"started_at"`
	UpdatedAt      string               `toml:"updated_at"`
	Turns          []exchangeSchema     `toml:"turns,omitempty"`
	Memory         []memoryEntrySchema  `toml:"memory,omitempty"`
	Pending        *pendingActionSchema `toml:"pending,omitempty"`
}

type exchangeSchema struct {
	User      string `toml:"user"`
	Assistant string `toml:"assistant"`
	At        string `toml:"at"`
}

type memoryEntrySchema struct {
	Role     string            `toml:"role"`
	Plural   bool              `toml:"plural,omitempty"`
	Seq      uint64            `toml:"seq"`
	Entities []entityRefSchema `toml:"entities"`
}

type entityRefSchema struct {
	Type string `toml:"type"`
	ID   string `toml:"id"`
	Name string `toml:"name,omitempty"`
}

type pendingActionSchema struct {
	ID             string      `toml:"id"`
	Tool           string      `toml:"tool"`
	ClientID       string      `toml:"client_id,omitempty"`
	State          string      `toml:"state"`
	ProposedAt     string      `toml:"proposed_at"`
	ProposedTurn   int         `toml:"proposed_turn"`
	Preview        []string    `toml:"preview,omitempty"`
	CascadePreview []string    `toml:"cascade_preview,omitempty"`
	Args           []argSchema `toml:"args,omitempty"`
}

// argSchema keeps the Go type of a bound argument so a stored proposal
// executes with the same values it previewed.
type argSchema struct {
	Name     string            `toml:"name"`
	Kind     string            `toml:"kind"`
	String   string            `toml:"string,omitempty"`
	Number   float64           `toml:"number,omitempty"`
	Integer  int64             `toml:"integer,omitempty"`
	Bool     bool              `toml:"bool,omitempty"`
	Entities []entityRefSchema `toml:"entities,omitempty"`
}
