package application

import (
	"fmt"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// Catalog is an immutable registry of tool definitions. It is built once at
// startup and handed to the controller and executor.
type Catalog struct {
	order []string
	defs  map[string]domain.ToolDefinition
}

func NewCatalog(defs ...domain.ToolDefinition) (*Catalog, error) {
	catalog := &Catalog{defs: make(map[string]domain.ToolDefinition, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("register tool: %w", err)
		}
		if _, exists := catalog.defs[def.Name]; exists {
			return nil, fmt.Errorf("register tool: duplicate tool name %q", def.Name)
		}
		catalog.defs[def.Name] = def.Clone()
		catalog.order = append(catalog.order, def.Name)
	}

	return catalog, nil
}

func NewDefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultToolDefinitions()...)
}

// List returns copies of every definition in registration order.
func (c *Catalog) List() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.defs[name].Clone())
	}
	return out
}

func (c *Catalog) Get(name string) (domain.ToolDefinition, error) {
	def, ok := c.defs[name]
	if !ok {
		return domain.ToolDefinition{}, &domain.UnknownToolError{Name: name}
	}
	return def.Clone(), nil
}

func (c *Catalog) Len() int {
	return len(c.order)
}
