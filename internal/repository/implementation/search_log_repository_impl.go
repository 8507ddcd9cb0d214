package implementation

import (
	"context"

	"talent-search-be/internal/model"
	"talent-search-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SearchLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchLogRepository(db *gorm.DB) contract.SearchLogRepository {
	return &SearchLogRepositoryImpl{db: db}
}

func (r *SearchLogRepositoryImpl) Create(ctx context.Context, log *model.SearchLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
