package implementation

import (
	"context"
	"errors"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/mapper"
	"talent-search-be/internal/model"
	"talent-search-be/internal/repository/contract"
	"talent-search-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CandidateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateMapper
}

func NewCandidateRepository(db *gorm.DB) contract.CandidateRepository {
	return &CandidateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateMapper(),
	}
}

func (r *CandidateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CandidateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error) {
	var m model.Candidate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CandidateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error) {
	var models []*model.Candidate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CandidateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Candidate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
