package registry

import (
	"testing"

	"talent-search-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DeduplicatesAndOrders(t *testing.T) {
	r := New([]*entity.TraitDefinition{
		{Key: "leadership", DisplayName: "Leadership"},
		{Key: "communication", DisplayName: "Communication"},
		{Key: "leadership", DisplayName: "Leadership (duplicate)"},
		nil,
		{Key: "", DisplayName: "nameless"},
	})

	assert.Equal(t, 2, r.Len())

	defs := r.List()
	require.Len(t, defs, 2)
	assert.Equal(t, "communication", defs[0].Key)
	assert.Equal(t, "leadership", defs[1].Key)

	def, ok := r.Resolve("leadership")
	require.True(t, ok)
	assert.Equal(t, "Leadership", def.DisplayName, "first definition wins")
}

func TestEnrich_BackfillsDisplayNames(t *testing.T) {
	r := New([]*entity.TraitDefinition{
		{Key: "communication", DisplayName: "Communication", Description: "Verbal and written"},
	})

	candidate := &entity.Candidate{
		Id:   uuid.New(),
		Name: "Alice",
		TraitResults: map[string]entity.TraitResult{
			"communication": {Score: 88},
			"mystery_trait": {Score: 42},
		},
	}

	r.Enrich(candidate)

	assert.Equal(t, "Communication", candidate.TraitResults["communication"].DisplayName)
	assert.Equal(t, "Verbal and written", candidate.TraitResults["communication"].Description)

	// Unknown identifiers degrade to the raw key but stay scorable.
	assert.Equal(t, "mystery_trait", candidate.TraitResults["mystery_trait"].DisplayName)
	assert.Equal(t, 42.0, candidate.TraitResults["mystery_trait"].Score)
}

func TestEnrich_NilCandidateIsNoop(t *testing.T) {
	r := New(nil)
	r.Enrich(nil)
}
