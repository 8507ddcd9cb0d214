package contract

import (
	"context"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/repository/specification"
)

type CandidateRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
