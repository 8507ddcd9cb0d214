package registry

import (
	"sort"

	"talent-search-be/internal/entity"
)

// Registry is the authoritative trait vocabulary. Every match criterion
// must resolve through it; identifiers it does not know are dropped by
// the parser, never matched against.
type Registry struct {
	traits map[string]entity.TraitDefinition
	order  []string
}

func New(definitions []*entity.TraitDefinition) *Registry {
	r := &Registry{
		traits: make(map[string]entity.TraitDefinition, len(definitions)),
	}
	for _, def := range definitions {
		if def == nil || def.Key == "" {
			continue
		}
		if _, exists := r.traits[def.Key]; exists {
			continue
		}
		r.traits[def.Key] = *def
		r.order = append(r.order, def.Key)
	}
	sort.Strings(r.order)
	return r
}

func (r *Registry) Has(key string) bool {
	_, ok := r.traits[key]
	return ok
}

func (r *Registry) Resolve(key string) (entity.TraitDefinition, bool) {
	def, ok := r.traits[key]
	return def, ok
}

// List returns all definitions in stable key order.
func (r *Registry) List() []entity.TraitDefinition {
	out := make([]entity.TraitDefinition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.traits[key])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.traits)
}

// Enrich backfills display names and descriptions on a candidate's raw
// trait results. Unknown identifiers keep the raw key as a degraded
// display name and stay scorable.
func (r *Registry) Enrich(candidate *entity.Candidate) {
	if candidate == nil {
		return
	}
	for key, result := range candidate.TraitResults {
		if def, ok := r.traits[key]; ok {
			result.DisplayName = def.DisplayName
			result.Description = def.Description
		} else if result.DisplayName == "" {
			result.DisplayName = key
		}
		candidate.TraitResults[key] = result
	}
}
