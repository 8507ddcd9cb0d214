package mapper

import (
	"testing"

	"talent-search-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCandidateMapper_ToEntity(t *testing.T) {
	m := NewCandidateMapper()

	id := uuid.New()
	candidate := &model.Candidate{
		Id:    id,
		Name:  "Alice",
		Email: "alice@example.com",
		TraitResults: datatypes.JSONMap{
			"communication": map[string]interface{}{
				"score":        float64(92),
				"percentile":   float64(88),
				"display_name": "Communication",
				"description":  "Clarity and empathy in dialogue",
			},
			"leadership": map[string]interface{}{
				"score": 75,
			},
		},
	}

	out := m.ToEntity(candidate)
	require.NotNil(t, out)

	assert.Equal(t, id, out.Id)
	assert.Equal(t, "Alice", out.Name)
	require.Len(t, out.TraitResults, 2)

	comm := out.TraitResults["communication"]
	assert.Equal(t, 92.0, comm.Score)
	require.NotNil(t, comm.Percentile)
	assert.Equal(t, 88.0, *comm.Percentile)
	assert.Equal(t, "Communication", comm.DisplayName)

	// Integer scores decode too, and absent percentile stays nil.
	lead := out.TraitResults["leadership"]
	assert.Equal(t, 75.0, lead.Score)
	assert.Nil(t, lead.Percentile)
}

func TestCandidateMapper_ToEntity_SkipsMalformedEntries(t *testing.T) {
	m := NewCandidateMapper()

	candidate := &model.Candidate{
		Id: uuid.New(),
		TraitResults: datatypes.JSONMap{
			"valid":      map[string]interface{}{"score": float64(50)},
			"not_object": "high",
			"no_score":   map[string]interface{}{"display_name": "Mystery"},
			"bad_score":  map[string]interface{}{"score": "ninety"},
		},
	}

	out := m.ToEntity(candidate)
	require.NotNil(t, out)

	require.Len(t, out.TraitResults, 1)
	assert.Equal(t, 50.0, out.TraitResults["valid"].Score)
}

func TestCandidateMapper_ToEntities(t *testing.T) {
	m := NewCandidateMapper()

	out := m.ToEntities([]*model.Candidate{
		{Id: uuid.New(), Name: "Alice"},
		{Id: uuid.New(), Name: "Bob"},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "Alice", out[0].Name)
	assert.Equal(t, "Bob", out[1].Name)
}

func TestCandidateMapper_ToEntity_Nil(t *testing.T) {
	m := NewCandidateMapper()
	assert.Nil(t, m.ToEntity(nil))
}
