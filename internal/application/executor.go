package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

var errNothingToUpdate = errors.New("nothing to update")

type toolHandler struct {
	// preview adds tool-specific lines to the argument listing. It must not write.
	preview func(ctx context.Context, run *toolRun) ([]string, error)
	execute func(ctx context.Context, run *toolRun) error
}

// Executor performs the store operations behind each catalog tool.
type Executor struct {
	store    ports.EntityStore
	catalog  *Catalog
	clock    ports.Clock
	handlers map[string]toolHandler
}

func NewExecutor(store ports.EntityStore, catalog *Catalog, clock ports.Clock) *Executor {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Executor{store: store, catalog: catalog, clock: clock, handlers: defaultHandlers()}
}

// Preview describes what Execute would do without writing anything.
func (e *Executor) Preview(ctx context.Context, toolName string, args domain.Args, scope domain.Scope) ([]string, error) {
	run, handler, err := e.prepare(ctx, toolName, args, scope)
	if err != nil {
		return nil, err
	}

	lines := argumentLines(run.def, run.args)
	if handler.preview != nil {
		extra, err := handler.preview(ctx, run)
		if err != nil {
			return nil, err
		}
		lines = append(lines, extra...)
	}
	return lines, nil
}

// Execute runs the tool. Scope and ownership of every referenced record are
// checked before the first write; the primary record is written before any
// cascade. A failure after some writes returns *domain.ExecutionError listing
// them.
func (e *Executor) Execute(ctx context.Context, toolName string, args domain.Args, scope domain.Scope) (domain.ExecutionResult, error) {
	run, handler, err := e.prepare(ctx, toolName, args, scope)
	if err != nil {
		return domain.ExecutionResult{}, err
	}

	if err := handler.execute(ctx, run); err != nil {
		return run.result, &domain.ExecutionError{Tool: toolName, Completed: run.completed, Err: err}
	}
	return run.result, nil
}

func (e *Executor) prepare(ctx context.Context, toolName string, args domain.Args, scope domain.Scope) (*toolRun, toolHandler, error) {
	def, err := e.catalog.Get(toolName)
	if err != nil {
		return nil, toolHandler{}, err
	}
	handler, ok := e.handlers[toolName]
	if !ok {
		return nil, toolHandler{}, &domain.UnknownToolError{Name: toolName}
	}
	if err := scope.Validate(); err != nil {
		return nil, toolHandler{}, &domain.ExecutionError{Tool: toolName, Err: err}
	}
	if def.ClientScoped && scope.ClientID == "" {
		return nil, toolHandler{}, &domain.ExecutionError{Tool: toolName, Err: fmt.Errorf("%w: %s needs a client", domain.ErrScopeViolation, toolName)}
	}

	run := &toolRun{
		def:    def,
		args:   args.Clone(),
		scope:  scope,
		store:  e.store,
		now:    e.clock.Now(),
		loaded: map[domain.EntityID]domain.Entity{},
		result: domain.ExecutionResult{Tool: toolName},
	}
	if err := run.checkOwnership(ctx); err != nil {
		return nil, toolHandler{}, &domain.ExecutionError{Tool: toolName, Err: err}
	}
	return run, handler, nil
}

func argumentLines(def domain.ToolDefinition, args domain.Args) []string {
	var lines []string
	for _, param := range def.Params {
		if param.Name == "client" || !args.Has(param.Name) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", param.Name, formatValue(args[param.Name])))
	}
	return lines
}
