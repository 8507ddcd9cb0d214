package search

import (
	"context"

	"talent-search-be/internal/entity"
	"talent-search-be/pkg/talent/query"

	"github.com/google/uuid"
)

// Retriever produces an unranked superset of candidates that might
// satisfy the parsed criteria. The filter is loose on purpose:
// thresholds are advisory ranking signals, not SQL predicates, because a
// hard filter over sparse trait coverage silently returns empty sets.
type Retriever struct {
	store CandidateStore
	limit int
}

func NewRetriever(store CandidateStore, limit int) *Retriever {
	if limit <= 0 {
		limit = 50
	}
	return &Retriever{
		store: store,
		limit: limit,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, parsed *query.ParsedQuery) ([]*entity.Candidate, error) {
	var (
		candidates []*entity.Candidate
		err        error
	)

	if len(parsed.Criteria) == 0 {
		// Fallback: full population, capped.
		candidates, err = r.store.ListCandidates(ctx, r.limit, 0)
	} else {
		candidates, err = r.store.FindByLooseTraitMatch(ctx, parsed.TraitKeys())
	}
	if err != nil {
		return nil, err
	}

	return dedupeById(candidates), nil
}

func dedupeById(candidates []*entity.Candidate) []*entity.Candidate {
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	out := make([]*entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if _, dup := seen[c.Id]; dup {
			continue
		}
		seen[c.Id] = struct{}{}
		out = append(out, c)
	}
	return out
}
