package service

import (
	"context"
	"time"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/repository/contract"
	"talent-search-be/internal/repository/specification"
	"talent-search-be/pkg/retry"
	"talent-search-be/pkg/talent/search"
)

// candidateStoreAdapter bridges the repository layer to the read-only
// store surface the search pipeline consumes. Every query runs under its
// own deadline and transient failures are retried with backoff, so a
// database hiccup does not immediately degrade the turn.
type candidateStoreAdapter struct {
	candidates  contract.CandidateRepository
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
}

func NewCandidateStoreAdapter(
	candidates contract.CandidateRepository,
	timeout time.Duration,
	maxAttempts int,
	baseDelay time.Duration,
) search.CandidateStore {
	return &candidateStoreAdapter{
		candidates:  candidates,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

func (a *candidateStoreAdapter) ListCandidates(ctx context.Context, limit, offset int) ([]*entity.Candidate, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	var out []*entity.Candidate
	err := a.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		out, err = a.candidates.FindAll(callCtx, specs...)
		return err
	})
	return out, err
}

func (a *candidateStoreAdapter) CountCandidates(ctx context.Context) (int64, error) {
	var out int64
	err := a.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		out, err = a.candidates.Count(callCtx)
		return err
	})
	return out, err
}

func (a *candidateStoreAdapter) FindByName(ctx context.Context, name string) (*entity.Candidate, error) {
	var out *entity.Candidate
	err := a.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		out, err = a.candidates.FindOne(callCtx, specification.ByCandidateName{Name: name})
		return err
	})
	return out, err
}

func (a *candidateStoreAdapter) FindByLooseTraitMatch(ctx context.Context, traitKeys []string) ([]*entity.Candidate, error) {
	var out []*entity.Candidate
	err := a.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		out, err = a.candidates.FindAll(callCtx, specification.HasAnyTrait{Keys: traitKeys})
		return err
	})
	return out, err
}

// withRetry applies the per-call deadline and the backoff policy. A
// canceled caller context is not retried.
func (a *candidateStoreAdapter) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	return retry.WithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		err := op(callCtx)
		if err != nil && ctx.Err() != nil {
			return &retry.Permanent{Err: ctx.Err()}
		}
		return err
	}, a.maxAttempts, a.baseDelay)
}
