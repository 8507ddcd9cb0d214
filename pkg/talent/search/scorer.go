package search

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"talent-search-be/internal/entity"
	"talent-search-be/pkg/talent/query"

	"github.com/panjf2000/ants/v2"
)

// DefaultThresholdPenalty is the contribution multiplier applied when a
// candidate's score sits below a criterion's minimum. Halving rather
// than zeroing keeps near-misses ranked above no-shows. Tunable, not a
// fixed law.
const DefaultThresholdPenalty = 0.5

// Result pairs a candidate with its computed match score in [0,1] and a
// human-readable reason.
type Result struct {
	Candidate *entity.Candidate
	Score     float64
	Reason    string
}

// Scorer computes weighted match scores. Scoring one candidate is a pure
// function of (candidate, parsedQuery), so ScoreAndRank fans the work out
// over a shared worker pool.
type Scorer struct {
	penalty     float64
	totalTraits int
	pool        *ants.Pool
}

func NewScorer(penalty float64, totalTraits, poolSize int) (*Scorer, error) {
	if penalty < 0 || penalty > 1 {
		penalty = DefaultThresholdPenalty
	}
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Scorer{
		penalty:     penalty,
		totalTraits: totalTraits,
		pool:        pool,
	}, nil
}

// Release shuts the worker pool down. The scorer must not be used after.
func (s *Scorer) Release() {
	s.pool.Release()
}

// Score computes the match score for one candidate. For each criterion
// with weight w the candidate contributes w * clamp(score/100, 0, 1);
// contributions below a stated minimum are multiplied by the penalty,
// missing traits contribute zero. The sum is normalized by total weight
// so the result stays in [0,1]. Empty criteria fall back to a
// presence-based score so results remain orderable.
func (s *Scorer) Score(candidate *entity.Candidate, parsed *query.ParsedQuery) (float64, string) {
	if len(parsed.Criteria) == 0 {
		return s.presenceScore(candidate)
	}

	type contribution struct {
		display string
		actual  float64
		value   float64
	}

	var (
		sum        float64
		sumWeights float64
		contribs   []contribution
	)

	for _, criterion := range parsed.Criteria {
		sumWeights += criterion.Weight

		result, ok := candidate.TraitResults[criterion.TraitKey]
		if !ok {
			continue
		}

		normalized := result.Score / 100
		if normalized < 0 {
			normalized = 0
		}
		if normalized > 1 {
			normalized = 1
		}

		value := criterion.Weight * normalized
		if criterion.MinScore != nil && result.Score < *criterion.MinScore {
			value *= s.penalty
		}

		sum += value
		display := criterion.DisplayName
		if display == "" {
			display = criterion.TraitKey
		}
		contribs = append(contribs, contribution{display: display, actual: result.Score, value: value})
	}

	if sumWeights == 0 {
		return s.presenceScore(candidate)
	}

	score := sum / sumWeights

	if len(contribs) == 0 {
		return score, assessmentSummary(candidate)
	}

	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].value > contribs[j].value
	})
	if len(contribs) > 3 {
		contribs = contribs[:3]
	}
	parts := make([]string, 0, len(contribs))
	for _, c := range contribs {
		parts = append(parts, fmt.Sprintf("%s(%.1f pts)", c.display, c.actual))
	}

	return score, strings.Join(parts, ", ")
}

// presenceScore orders candidates by how much assessment data exists
// when no criteria constrain the search.
func (s *Scorer) presenceScore(candidate *entity.Candidate) (float64, string) {
	count := candidate.AssessedTraitCount()
	var score float64
	if s.totalTraits > 0 {
		score = float64(count) / float64(s.totalTraits)
	} else if count > 0 {
		score = float64(count) / float64(count+1)
	}
	if score > 1 {
		score = 1
	}
	return score, assessmentSummary(candidate)
}

func assessmentSummary(candidate *entity.Candidate) string {
	count := candidate.AssessedTraitCount()
	if count == 0 {
		return "no completed assessments"
	}
	return fmt.Sprintf("%d completed assessments", count)
}

// ScoreAndRank scores every candidate in parallel and returns results
// ordered by score descending, ties broken by candidate id ascending so
// repeated invocations produce identical rankings.
func (s *Scorer) ScoreAndRank(candidates []*entity.Candidate, parsed *query.ParsedQuery) []Result {
	results := make([]Result, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		i, candidate := i, candidate
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			score, reason := s.Score(candidate, parsed)
			results[i] = Result{Candidate: candidate, Score: score, Reason: reason}
		})
		if submitErr != nil {
			// Pool saturated or released: score inline.
			score, reason := s.Score(candidate, parsed)
			results[i] = Result{Candidate: candidate, Score: score, Reason: reason}
			wg.Done()
		}
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return bytes.Compare(results[i].Candidate.Id[:], results[j].Candidate.Id[:]) < 0
	})

	return results
}
