package contract

import (
	"context"

	"talent-search-be/internal/entity"
)

type TraitRepository interface {
	FindAll(ctx context.Context) ([]*entity.TraitDefinition, error)
}
