package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyCandidateRepository fails a fixed number of times before
// succeeding, recording what it saw on each call.
type flakyCandidateRepository struct {
	failures    int
	calls       int
	sawDeadline bool
	onCall      func()
	candidates  []*entity.Candidate
}

func (r *flakyCandidateRepository) observe(ctx context.Context) error {
	r.calls++
	_, r.sawDeadline = ctx.Deadline()
	if r.onCall != nil {
		r.onCall()
	}
	if r.calls <= r.failures {
		return errors.New("connection reset by peer")
	}
	return nil
}

func (r *flakyCandidateRepository) FindOne(ctx context.Context, _ ...specification.Specification) (*entity.Candidate, error) {
	if err := r.observe(ctx); err != nil {
		return nil, err
	}
	if len(r.candidates) == 0 {
		return nil, nil
	}
	return r.candidates[0], nil
}

func (r *flakyCandidateRepository) FindAll(ctx context.Context, _ ...specification.Specification) ([]*entity.Candidate, error) {
	if err := r.observe(ctx); err != nil {
		return nil, err
	}
	return r.candidates, nil
}

func (r *flakyCandidateRepository) Count(ctx context.Context, _ ...specification.Specification) (int64, error) {
	if err := r.observe(ctx); err != nil {
		return 0, err
	}
	return int64(len(r.candidates)), nil
}

func TestCandidateStoreAdapter_RetriesTransientFailures(t *testing.T) {
	repo := &flakyCandidateRepository{
		failures:   2,
		candidates: []*entity.Candidate{{Name: "Alice"}},
	}
	store := NewCandidateStoreAdapter(repo, time.Second, 3, time.Millisecond)

	out, err := store.FindByLooseTraitMatch(context.Background(), []string{"communication"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, 3, repo.calls)
}

func TestCandidateStoreAdapter_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &flakyCandidateRepository{failures: 10}
	store := NewCandidateStoreAdapter(repo, time.Second, 3, time.Millisecond)

	_, err := store.ListCandidates(context.Background(), 10, 0)
	require.Error(t, err)

	assert.Equal(t, 3, repo.calls)
}

func TestCandidateStoreAdapter_AppliesPerCallDeadline(t *testing.T) {
	repo := &flakyCandidateRepository{}
	store := NewCandidateStoreAdapter(repo, time.Second, 3, time.Millisecond)

	// The caller passes a context without a deadline; the adapter must
	// still bound the query.
	_, err := store.CountCandidates(context.Background())
	require.NoError(t, err)

	assert.True(t, repo.sawDeadline)
}

func TestCandidateStoreAdapter_CanceledCallerIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	repo := &flakyCandidateRepository{failures: 10, onCall: cancel}
	store := NewCandidateStoreAdapter(repo, time.Second, 3, time.Millisecond)

	_, err := store.FindByName(ctx, "Alice")
	require.Error(t, err)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, repo.calls)
}
