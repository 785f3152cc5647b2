package domain

import (
	"fmt"
	"strings"
)

type ToolKind string

const (
	ToolQuery    ToolKind = "query"
	ToolMutation ToolKind = "mutation"
)

func (k ToolKind) Valid() bool {
	return k == ToolQuery || k == ToolMutation
}

// RequiresConfirmation is the single place the query/mutation policy is decided.
func (k ToolKind) RequiresConfirmation() bool {
	return k == ToolMutation
}

type ParamType string

const (
	ParamString     ParamType = "string"
	ParamNumber     ParamType = "number"
	ParamInteger    ParamType = "integer"
	ParamBoolean    ParamType = "boolean"
	ParamEnum       ParamType = "enum"
	ParamDate       ParamType = "date"
	ParamTime       ParamType = "time"
	ParamEntity     ParamType = "entity"
	ParamEntityList ParamType = "entity_list"
)

func (t ParamType) Valid() bool {
	switch t {
	case ParamString, ParamNumber, ParamInteger, ParamBoolean, ParamEnum, ParamDate, ParamTime, ParamEntity, ParamEntityList:
		return true
	default:
		return false
	}
}

func (t ParamType) IsReference() bool {
	return t == ParamEntity || t == ParamEntityList
}

type ParamSpec struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
	// EntityType is set for entity and entity_list parameters.
	EntityType EntityType
	Enum       []string
	// Rules holds go-playground/validator tags applied after type coercion.
	Rules string
}

type ToolDefinition struct {
	Name           string
	Description    string
	Kind           ToolKind
	Params         []ParamSpec
	CascadeEffects []string
	// ClientScoped tools operate on the active client's records.
	ClientScoped bool
}

func (d ToolDefinition) Param(name string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

func (d ToolDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("tool name is required")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("tool %s: kind must be %q or %q", d.Name, ToolQuery, ToolMutation)
	}

	seen := make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("tool %s: parameter name is required", d.Name)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("tool %s: duplicate parameter %q", d.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if !p.Type.Valid() {
			return fmt.Errorf("tool %s: parameter %s has unsupported type %q", d.Name, p.Name, p.Type)
		}
		if p.Type.IsReference() && !p.EntityType.Valid() {
			return fmt.Errorf("tool %s: parameter %s must declare an entity type", d.Name, p.Name)
		}
		if p.Type == ParamEnum && len(p.Enum) == 0 {
			return fmt.Errorf("tool %s: enum parameter %s has no values", d.Name, p.Name)
		}
	}

	return nil
}

// Clone returns a deep copy so registered definitions cannot be mutated through callers.
func (d ToolDefinition) Clone() ToolDefinition {
	out := d
	out.Params = make([]ParamSpec, len(d.Params))
	for i, p := range d.Params {
		p.Enum = append([]string(nil), p.Enum...)
		out.Params[i] = p
	}
	out.CascadeEffects = append([]string(nil), d.CascadeEffects...)
	return out
}

// Args holds tool arguments after coercion and entity resolution.
type Args map[string]any

func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

func (a Args) Float(key string) float64 {
	n, _ := NumberValue(a[key])
	return n
}

func (a Args) Int(key string) int64 {
	switch n := a[key].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		f, _ := NumberValue(n)
		return int64(f)
	}
}

func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

func (a Args) Entity(key string) EntityRef {
	ref, _ := a[key].(EntityRef)
	return ref
}

func (a Args) Entities(key string) []EntityRef {
	refs, _ := a[key].([]EntityRef)
	return refs
}

func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		if refs, ok := v.([]EntityRef); ok {
			v = append([]EntityRef(nil), refs...)
		}
		out[k] = v
	}
	return out
}

// CascadeRecord names one secondary write and the declared effect that caused it.
type CascadeRecord struct {
	Effect string
	Entity EntityRef
}

type ExecutionResult struct {
	Tool     string
	Primary  *EntityRef
	Cascades []CascadeRecord
	// Affected lists records updated or read by the tool, in output order.
	Affected []EntityRef
	Removed  []EntityRef
	// Lines is the formatted body of the result.
	Lines []string
	// Plural marks results whose Affected set should be remembered as a group.
	Plural bool
	// FocusClient is set when the tool changes the active client.
	FocusClient *EntityRef
}
