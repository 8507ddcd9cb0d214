package search

import (
	"testing"

	"talent-search-be/internal/entity"
	"talent-search-be/pkg/talent/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T, totalTraits int) *Scorer {
	t.Helper()
	scorer, err := NewScorer(DefaultThresholdPenalty, totalTraits, 4)
	require.NoError(t, err)
	t.Cleanup(scorer.Release)
	return scorer
}

func candidateWithTraits(name string, traits map[string]float64) *entity.Candidate {
	results := make(map[string]entity.TraitResult, len(traits))
	for key, score := range traits {
		results[key] = entity.TraitResult{Score: score, DisplayName: key}
	}
	return &entity.Candidate{
		Id:           uuid.New(),
		Name:         name,
		Email:        name + "@example.com",
		TraitResults: results,
	}
}

func criteriaWithThreshold(trait string, weight, minScore float64) *query.ParsedQuery {
	return &query.ParsedQuery{
		Criteria: []query.MatchCriterion{
			{TraitKey: trait, DisplayName: trait, Weight: weight, MinScore: &minScore},
		},
	}
}

func TestScore_ThresholdPenalty(t *testing.T) {
	scorer := newTestScorer(t, 10)
	parsed := criteriaWithThreshold("t1", 1, 70)

	a := candidateWithTraits("A", map[string]float64{"t1": 90})
	b := candidateWithTraits("B", map[string]float64{"t1": 40})

	scoreA, reasonA := scorer.Score(a, parsed)
	scoreB, reasonB := scorer.Score(b, parsed)

	assert.InDelta(t, 0.90, scoreA, 1e-9, "above threshold keeps full credit")
	assert.InDelta(t, 0.20, scoreB, 1e-9, "below threshold halves the contribution")
	assert.Contains(t, reasonA, "t1(90.0 pts)")
	assert.Contains(t, reasonB, "t1(40.0 pts)")
}

func TestScore_MissingTraitContributesZero(t *testing.T) {
	scorer := newTestScorer(t, 10)
	parsed := &query.ParsedQuery{
		Criteria: []query.MatchCriterion{
			{TraitKey: "t1", Weight: 1},
			{TraitKey: "t2", Weight: 1},
		},
	}

	c := candidateWithTraits("A", map[string]float64{"t1": 80})
	score, _ := scorer.Score(c, parsed)

	// 0.8 from t1, 0 from t2, normalized by weight 2.
	assert.InDelta(t, 0.40, score, 1e-9)
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	scorer := newTestScorer(t, 10)

	cases := []*entity.Candidate{
		candidateWithTraits("empty", nil),
		candidateWithTraits("low", map[string]float64{"t1": 0}),
		candidateWithTraits("high", map[string]float64{"t1": 100, "t2": 100}),
		candidateWithTraits("overflow", map[string]float64{"t1": 250}),
		candidateWithTraits("negative", map[string]float64{"t1": -30}),
	}
	queries := []*query.ParsedQuery{
		{},
		{Criteria: []query.MatchCriterion{{TraitKey: "t1", Weight: 2.5}}},
		criteriaWithThreshold("t1", 1, 100),
	}

	for _, c := range cases {
		for _, q := range queries {
			score, _ := scorer.Score(c, q)
			assert.GreaterOrEqual(t, score, 0.0, "candidate %s", c.Name)
			assert.LessOrEqual(t, score, 1.0, "candidate %s", c.Name)
		}
	}
}

func TestScore_EmptyCriteriaUsesPresence(t *testing.T) {
	scorer := newTestScorer(t, 10)
	parsed := &query.ParsedQuery{}

	rich := candidateWithTraits("rich", map[string]float64{
		"t1": 50, "t2": 50, "t3": 50, "t4": 50, "t5": 50,
	})
	empty := candidateWithTraits("empty", nil)

	scoreRich, reasonRich := scorer.Score(rich, parsed)
	scoreEmpty, reasonEmpty := scorer.Score(empty, parsed)

	assert.Greater(t, scoreRich, scoreEmpty)
	assert.Contains(t, reasonRich, "5 completed assessments")
	assert.Equal(t, "no completed assessments", reasonEmpty)
}

func TestScoreAndRank_DeterministicOrder(t *testing.T) {
	scorer := newTestScorer(t, 10)
	parsed := &query.ParsedQuery{
		Criteria: []query.MatchCriterion{{TraitKey: "t1", Weight: 1}},
	}

	// Two candidates with identical scores force the id tie-break.
	tied1 := candidateWithTraits("tied1", map[string]float64{"t1": 60})
	tied2 := candidateWithTraits("tied2", map[string]float64{"t1": 60})
	top := candidateWithTraits("top", map[string]float64{"t1": 95})

	candidates := []*entity.Candidate{tied1, top, tied2}

	first := scorer.ScoreAndRank(candidates, parsed)
	require.Len(t, first, 3)
	assert.Equal(t, "top", first[0].Candidate.Name)

	for i := 0; i < 20; i++ {
		again := scorer.ScoreAndRank(candidates, parsed)
		for j := range first {
			assert.Equal(t, first[j].Candidate.Id, again[j].Candidate.Id, "ranking must be stable across invocations")
		}
	}
}
