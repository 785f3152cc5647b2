package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	DefaultMatchThreshold  = 0.5
	DefaultAmbiguityMargin = 0.1
	memoryRecencyBoost     = 0.05
)

type ResolverOptions struct {
	Threshold float64
	Margin    float64
}

// Resolver matches free-text references to entities inside a scope. It never
// writes and never looks outside the scope it is given.
type Resolver struct {
	store     ports.EntityStore
	threshold float64
	margin    float64
}

func NewResolver(store ports.EntityStore, opts ResolverOptions) *Resolver {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		opts.Threshold = DefaultMatchThreshold
	}
	// A zero margin would pick between near-identical names.
	if opts.Margin <= 0 || opts.Margin >= 1 {
		opts.Margin = DefaultAmbiguityMargin
	}

	return &Resolver{store: store, threshold: opts.Threshold, margin: opts.Margin}
}

type ResolveRequest struct {
	Query string
	// Type narrows the search. Empty searches every type visible in Scope.
	Type   domain.EntityType
	Scope  domain.Scope
	Memory *domain.EntityMemory
}

// Resolve returns the single best match, *domain.AmbiguousEntityError when
// several candidates are within the margin of each other, or
// *domain.NoMatchError when nothing clears the threshold.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (domain.ResolvedEntity, error) {
	candidates, err := r.Candidates(ctx, req)
	if err != nil {
		return domain.ResolvedEntity{}, err
	}
	if len(candidates) == 0 {
		return domain.ResolvedEntity{}, &domain.NoMatchError{Reference: req.Query, Type: req.Type}
	}

	top := candidates[0]
	tied := []domain.ResolvedEntity{top}
	for _, candidate := range candidates[1:] {
		if top.Confidence-candidate.Confidence > r.margin {
			break
		}
		tied = append(tied, candidate)
	}
	if len(tied) > 1 {
		return domain.ResolvedEntity{}, &domain.AmbiguousEntityError{Reference: req.Query, Type: req.Type, Candidates: tied}
	}

	return top, nil
}

// Candidates returns every entity scoring at or above the threshold, best first.
func (r *Resolver) Candidates(ctx context.Context, req ResolveRequest) ([]domain.ResolvedEntity, error) {
	if err := req.Scope.Validate(); err != nil {
		return nil, err
	}
	query := normalizeName(req.Query)
	if query == "" {
		return nil, &domain.NoMatchError{Reference: req.Query, Type: req.Type}
	}

	types, err := r.searchTypes(req)
	if err != nil {
		return nil, err
	}

	var out []domain.ResolvedEntity
	for _, entityType := range types {
		entities, err := r.store.Query(ctx, req.Scope, entityType, domain.Filter{})
		if err != nil {
			return nil, fmt.Errorf("query %s candidates: %w", entityType, err)
		}
		for _, entity := range entities {
			if !req.Scope.Allows(entity) {
				continue
			}
			if string(entity.ID) == strings.TrimSpace(req.Query) {
				return []domain.ResolvedEntity{{EntityRef: entity.Ref(), Confidence: 1}}, nil
			}
			score := MatchScore(query, normalizeName(entity.Name))
			if score == 0 {
				continue
			}
			if req.Memory != nil && req.Memory.Contains(entity.ID) {
				score += memoryRecencyBoost
			}
			if score > 1 {
				score = 1
			}
			if score < r.threshold {
				continue
			}
			out = append(out, domain.ResolvedEntity{EntityRef: entity.Ref(), Confidence: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *Resolver) searchTypes(req ResolveRequest) ([]domain.EntityType, error) {
	if req.Type != "" {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("resolve %q: unknown entity type %q", req.Query, req.Type)
		}
		if req.Type.ClientScoped() && req.Scope.ClientID == "" {
			return nil, fmt.Errorf("resolve %s %q: %w: client is required", req.Type, req.Query, domain.ErrScopeViolation)
		}
		return []domain.EntityType{req.Type}, nil
	}

	types := []domain.EntityType{domain.EntityClient}
	if req.Scope.ClientID != "" {
		for _, t := range domain.EntityTypes {
			if t.ClientScoped() {
				types = append(types, t)
			}
		}
	}
	return types, nil
}

// MatchScore rates how well a normalized query matches a normalized name.
func MatchScore(query, name string) float64 {
	if query == "" || name == "" {
		return 0
	}
	if query == name {
		return 1
	}
	ratio := float64(len([]rune(query))) / float64(len([]rune(name)))
	if ratio > 1 {
		return 0
	}
	if tokenSubset(strings.Fields(query), strings.Fields(name)) {
		return 0.6 + 0.4*ratio
	}
	if strings.Contains(name, query) {
		return 0.3 + 0.4*ratio
	}
	return 0
}

func tokenSubset(query, name []string) bool {
	have := make(map[string]int, len(name))
	for _, token := range name {
		have[token]++
	}
	for _, token := range query {
		if have[token] == 0 {
			return false
		}
		have[token]--
	}
	return true
}

func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			b.WriteRune(r)
		case r == '&':
			b.WriteString(" & ")
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsResolutionFailure reports whether err asks the user for clarification
// rather than signalling a collaborator failure.
func IsResolutionFailure(err error) bool {
	var ambiguous *domain.AmbiguousEntityError
	var noMatch *domain.NoMatchError
	return errors.As(err, &ambiguous) || errors.As(err, &noMatch)
}
