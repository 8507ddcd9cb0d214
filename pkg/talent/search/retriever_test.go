package search

import (
	"context"
	"testing"

	"talent-search-be/internal/entity"
	"talent-search-be/pkg/talent/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieve_LooseMatchIgnoresThresholds(t *testing.T) {
	minScore := 90.0
	parsed := &query.ParsedQuery{
		Criteria: []query.MatchCriterion{
			{TraitKey: "communication", Weight: 1, MinScore: &minScore},
		},
	}

	store := &fakeStore{candidates: []*entity.Candidate{
		testCandidate("Alice", map[string]float64{"communication": 95}),
		testCandidate("Bob", map[string]float64{"communication": 10}),
		testCandidate("Carol", map[string]float64{"leadership": 99}),
	}}

	r := NewRetriever(store, 50)
	candidates, err := r.Retrieve(context.Background(), parsed)
	require.NoError(t, err)

	// Bob is far below the threshold yet still retrieved; the threshold
	// only matters during scoring.
	require.Len(t, candidates, 2)
	names := []string{candidates[0].Name, candidates[1].Name}
	assert.Contains(t, names, "Alice")
	assert.Contains(t, names, "Bob")
}

func TestRetrieve_EmptyCriteriaFallsBackToCappedList(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 10; i++ {
		store.candidates = append(store.candidates, testCandidate("c", nil))
	}

	r := NewRetriever(store, 3)
	candidates, err := r.Retrieve(context.Background(), &query.ParsedQuery{})
	require.NoError(t, err)

	assert.Len(t, candidates, 3)
}

func TestRetrieve_DeduplicatesById(t *testing.T) {
	dup := testCandidate("Alice", map[string]float64{"communication": 80, "leadership": 80})
	store := &duplicatingStore{candidate: dup}

	r := NewRetriever(store, 50)
	candidates, err := r.Retrieve(context.Background(), &query.ParsedQuery{
		Criteria: []query.MatchCriterion{
			{TraitKey: "communication", Weight: 1},
			{TraitKey: "leadership", Weight: 1},
		},
	})
	require.NoError(t, err)

	assert.Len(t, candidates, 1)
}

// duplicatingStore returns the same candidate twice to exercise dedupe.
type duplicatingStore struct {
	candidate *entity.Candidate
}

func (s *duplicatingStore) ListCandidates(context.Context, int, int) ([]*entity.Candidate, error) {
	return nil, nil
}

func (s *duplicatingStore) CountCandidates(context.Context) (int64, error) {
	return 1, nil
}

func (s *duplicatingStore) FindByName(context.Context, string) (*entity.Candidate, error) {
	return nil, nil
}

func (s *duplicatingStore) FindByLooseTraitMatch(context.Context, []string) ([]*entity.Candidate, error) {
	return []*entity.Candidate{s.candidate, s.candidate}, nil
}
