package contract

import (
	"context"

	"talent-search-be/internal/model"
)

type SearchLogRepository interface {
	Create(ctx context.Context, log *model.SearchLog) error
}
