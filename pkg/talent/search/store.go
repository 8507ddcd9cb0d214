package search

import (
	"context"

	"talent-search-be/internal/entity"
)

// CandidateStore is the read-only query surface over candidate records.
// FindByLooseTraitMatch must return every candidate with any result for
// at least one of the given trait keys; precision comes from scoring,
// not the store.
type CandidateStore interface {
	ListCandidates(ctx context.Context, limit, offset int) ([]*entity.Candidate, error)
	CountCandidates(ctx context.Context) (int64, error)
	FindByName(ctx context.Context, name string) (*entity.Candidate, error)
	FindByLooseTraitMatch(ctx context.Context, traitKeys []string) ([]*entity.Candidate, error)
}
