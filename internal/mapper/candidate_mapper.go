package mapper

import (
	"time"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/model"

	"gorm.io/datatypes"
)

type CandidateMapper struct{}

func NewCandidateMapper() *CandidateMapper {
	return &CandidateMapper{}
}

func (m *CandidateMapper) ToEntity(c *model.Candidate) *entity.Candidate {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Candidate{
		Id:           c.Id,
		Name:         c.Name,
		Email:        c.Email,
		TraitResults: m.traitResultsToEntity(c.TraitResults),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *CandidateMapper) ToEntities(models []*model.Candidate) []*entity.Candidate {
	entities := make([]*entity.Candidate, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}

// traitResultsToEntity decodes the raw JSONB map into typed trait results.
// Entries whose value is not an object with a numeric score are skipped
// rather than failing the whole candidate.
func (m *CandidateMapper) traitResultsToEntity(raw datatypes.JSONMap) map[string]entity.TraitResult {
	results := make(map[string]entity.TraitResult, len(raw))
	for key, value := range raw {
		payload, ok := value.(map[string]interface{})
		if !ok {
			continue
		}

		score, ok := asFloat(payload["score"])
		if !ok {
			continue
		}

		result := entity.TraitResult{Score: score}
		if p, ok := asFloat(payload["percentile"]); ok {
			result.Percentile = &p
		}
		if s, ok := payload["display_name"].(string); ok {
			result.DisplayName = s
		}
		if s, ok := payload["description"].(string); ok {
			result.Description = s
		}
		results[key] = result
	}
	return results
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
