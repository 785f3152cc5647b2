package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

var errNoClients = errors.New("company has no clients")

// clientChoiceError asks the user which wedding a client-scoped request is for.
type clientChoiceError struct {
	Clients []domain.EntityRef
}

func (e *clientChoiceError) Error() string {
	return fmt.Sprintf("%d clients match, none is active", len(e.Clients))
}

var (
	singularPronouns = setOf("it", "this", "that", "this one", "that one", "him", "her", "he", "she", "his", "hers")
	pluralPronouns   = setOf("they", "them", "their", "theirs", "those", "these", "all of them", "both", "both of them")
	othersPhrases    = setOf("the others", "others", "the rest", "rest", "everyone else", "everybody else", "all the others", "the remaining ones")
	everyonePhrases  = setOf("everyone", "everybody", "all", "everything", "all of it", "all guests", "every guest", "all items", "the whole timeline")
)

func setOf(items ...string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}

// IsPronoun reports whether a reference is resolved from memory rather than by name.
func IsPronoun(reference string) bool {
	key := normalizeName(reference)
	return singularPronouns[key] || pluralPronouns[key] || othersPhrases[key] || strings.HasPrefix(key, "the other ")
}

// resolveScope settles the client a request runs against. An explicit client
// argument wins, then the active client, then the company's only client.
func (c *Controller) resolveScope(ctx context.Context, t *turn, def domain.ToolDefinition, args domain.Args) (domain.Scope, error) {
	conv := t.conv
	scope := domain.Scope{CompanyID: conv.CompanyID}

	if reference, ok := args["client"].(string); ok && reference != "" {
		param, _ := def.Param("client")
		ref, err := c.resolveOne(ctx, t, param, reference, scope)
		if err != nil {
			return scope, err
		}
		args["client"] = ref
		conv.Memory.RememberEntity(ref)
		if def.ClientScoped {
			conv.ActiveClientID = string(ref.ID)
			scope.ClientID = string(ref.ID)
		}
		return scope, nil
	}

	if !def.ClientScoped {
		return scope, nil
	}
	if conv.ActiveClientID != "" {
		scope.ClientID = conv.ActiveClientID
		return scope, nil
	}

	clients, err := c.store.Query(ctx, scope, domain.EntityClient, domain.Filter{})
	if err != nil {
		return scope, fmt.Errorf("query clients: %w", err)
	}
	switch len(clients) {
	case 0:
		return scope, errNoClients
	case 1:
		conv.ActiveClientID = string(clients[0].ID)
		conv.Memory.RememberEntity(clients[0].Ref())
		scope.ClientID = conv.ActiveClientID
		return scope, nil
	}

	sortByName(clients)
	refs := make([]domain.EntityRef, 0, len(clients))
	for _, client := range clients {
		refs = append(refs, client.Ref())
	}
	return scope, &clientChoiceError{Clients: refs}
}

// resolveReferences replaces textual entity arguments with entity refs and
// folds every resolved ref into memory.
func (c *Controller) resolveReferences(ctx context.Context, t *turn, def domain.ToolDefinition, args domain.Args, scope domain.Scope) error {
	for _, param := range def.Params {
		if !param.Type.IsReference() {
			continue
		}
		switch value := args[param.Name].(type) {
		case string:
			if param.Type == domain.ParamEntity {
				ref, err := c.resolveOne(ctx, t, param, value, scope)
				if err != nil {
					return err
				}
				args[param.Name] = ref
				t.conv.Memory.RememberEntity(ref)
				continue
			}
			refs, err := c.resolveList(ctx, t, param, []string{value}, scope)
			if err != nil {
				return err
			}
			args[param.Name] = refs
			t.conv.Memory.RememberGroup(param.EntityType, refs)
		case []string:
			refs, err := c.resolveList(ctx, t, param, value, scope)
			if err != nil {
				return err
			}
			args[param.Name] = refs
			t.conv.Memory.RememberGroup(param.EntityType, refs)
		}
	}
	return nil
}

func (c *Controller) resolveOne(ctx context.Context, t *turn, param domain.ParamSpec, reference string, scope domain.Scope) (domain.EntityRef, error) {
	memory := t.conv.Memory
	key := normalizeName(reference)

	switch {
	case singularPronouns[key]:
		if ref, ok := memory.MostRecentSingular(); ok && ref.Type == param.EntityType {
			return ref, nil
		}
		if ref, ok := recallSingular(memory, param.EntityType); ok {
			return ref, nil
		}
		return domain.EntityRef{}, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
	case pluralPronouns[key]:
		if ref, ok := recallSingular(memory, param.EntityType); ok {
			return ref, nil
		}
		if refs, ok := recallGroup(memory, param.EntityType); ok && len(refs) == 1 {
			return refs[0], nil
		}
		return domain.EntityRef{}, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
	}

	resolved, err := c.resolver.Resolve(ctx, ResolveRequest{
		Query:  reference,
		Type:   param.EntityType,
		Scope:  scope,
		Memory: memory,
	})
	if err != nil {
		return domain.EntityRef{}, err
	}
	return resolved.EntityRef, nil
}

func (c *Controller) resolveList(ctx context.Context, t *turn, param domain.ParamSpec, references []string, scope domain.Scope) ([]domain.EntityRef, error) {
	memory := t.conv.Memory
	var out []domain.EntityRef
	seen := map[domain.EntityID]bool{}
	add := func(refs ...domain.EntityRef) {
		for _, ref := range refs {
			if !seen[ref.ID] {
				seen[ref.ID] = true
				out = append(out, ref)
			}
		}
	}

	for _, reference := range expandNameList(references) {
		key := normalizeName(reference)
		switch {
		case pluralPronouns[key]:
			refs, ok := recallGroup(memory, param.EntityType)
			if !ok {
				if ref, single := recallSingular(memory, param.EntityType); single {
					refs, ok = []domain.EntityRef{ref}, true
				}
			}
			if !ok {
				return nil, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
			}
			add(refs...)
		case othersPhrases[key] || strings.HasPrefix(key, "the other "):
			refs, ok := recallGroup(memory, param.EntityType)
			if !ok {
				return nil, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
			}
			last, hasLast := recallSingular(memory, param.EntityType)
			var rest []domain.EntityRef
			for _, ref := range refs {
				if hasLast && ref.ID == last.ID {
					continue
				}
				rest = append(rest, ref)
			}
			if len(rest) == 0 {
				return nil, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
			}
			add(rest...)
		case everyonePhrases[key]:
			entities, err := c.store.Query(ctx, scope, param.EntityType, domain.Filter{})
			if err != nil {
				return nil, fmt.Errorf("query %s: %w", param.EntityType, err)
			}
			if len(entities) == 0 {
				return nil, &domain.NoMatchError{Reference: reference, Type: param.EntityType}
			}
			sort.SliceStable(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })
			for _, entity := range entities {
				add(entity.Ref())
			}
		default:
			ref, err := c.resolveOne(ctx, t, param, reference, scope)
			if err != nil {
				return nil, err
			}
			add(ref)
		}
	}

	return out, nil
}

// expandNameList splits "Priya, Raj and Meera" into separate references.
func expandNameList(references []string) []string {
	var out []string
	for _, reference := range references {
		for _, part := range strings.Split(reference, ",") {
			for _, name := range strings.Split(part, " and ") {
				if name = strings.TrimSpace(name); name != "" {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

func recallSingular(memory *domain.EntityMemory, t domain.EntityType) (domain.EntityRef, bool) {
	role, ok := domain.SingularRole(t)
	if !ok {
		return domain.EntityRef{}, false
	}
	return memory.Recall(role)
}

func recallGroup(memory *domain.EntityMemory, t domain.EntityType) ([]domain.EntityRef, bool) {
	if role, ok := domain.PluralRole(t); ok {
		if refs, ok := memory.RecallPlural(role); ok {
			return refs, true
		}
	}
	refs, ok := memory.MostRecentPlural()
	if !ok {
		return nil, false
	}
	for _, ref := range refs {
		if ref.Type != t {
			return nil, false
		}
	}
	return refs, true
}
