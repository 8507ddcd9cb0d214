package mapper

import (
	"talent-search-be/internal/entity"
	"talent-search-be/internal/model"
)

type TraitMapper struct{}

func NewTraitMapper() *TraitMapper {
	return &TraitMapper{}
}

func (m *TraitMapper) ToEntity(t *model.Trait) *entity.TraitDefinition {
	if t == nil {
		return nil
	}
	return &entity.TraitDefinition{
		Key:         t.Key,
		DisplayName: t.DisplayName,
		Description: t.Description,
	}
}

func (m *TraitMapper) ToEntities(models []*model.Trait) []*entity.TraitDefinition {
	entities := make([]*entity.TraitDefinition, 0, len(models))
	for _, t := range models {
		entities = append(entities, m.ToEntity(t))
	}
	return entities
}
