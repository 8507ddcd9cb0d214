package implementation

import (
	"context"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/mapper"
	"talent-search-be/internal/model"
	"talent-search-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TraitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TraitMapper
}

func NewTraitRepository(db *gorm.DB) contract.TraitRepository {
	return &TraitRepositoryImpl{
		db:     db,
		mapper: mapper.NewTraitMapper(),
	}
}

func (r *TraitRepositoryImpl) FindAll(ctx context.Context) ([]*entity.TraitDefinition, error) {
	var models []*model.Trait
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
