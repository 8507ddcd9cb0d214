package conversation

import (
	"testing"

	"talent-search-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	contexts map[string]*Context
}

func newMapStore() *mapStore {
	return &mapStore{contexts: make(map[string]*Context)}
}

func (s *mapStore) Save(ctx *Context) {
	s.contexts[ctx.SessionId] = ctx
}

func (s *mapStore) Get(sessionId string) (*Context, bool) {
	ctx, ok := s.contexts[sessionId]
	return ctx, ok
}

func (s *mapStore) Delete(sessionId string) {
	delete(s.contexts, sessionId)
}

func TestGetOrCreate_LazyAndStable(t *testing.T) {
	m := NewManager(newMapStore())

	first := m.GetOrCreate("s1")
	require.NotNil(t, first)
	assert.Equal(t, "s1", first.SessionId)
	assert.False(t, first.CreatedAt.IsZero())

	again := m.GetOrCreate("s1")
	assert.Same(t, first, again, "same session id must return the same context")

	other := m.GetOrCreate("s2")
	assert.NotSame(t, first, other)
}

func TestAddMessage_AppendsAndTouches(t *testing.T) {
	m := NewManager(newMapStore())
	ctx := m.GetOrCreate("s1")

	before := ctx.UpdatedAt
	m.AddMessage(ctx, "user", "hello", map[string]string{"intent": "search"})
	m.AddMessage(ctx, "assistant", "hi", nil)

	require.Len(t, ctx.Messages, 2)
	assert.Equal(t, "user", ctx.Messages[0].Role)
	assert.Equal(t, "hello", ctx.Messages[0].Content)
	assert.Equal(t, "search", ctx.Messages[0].Metadata["intent"])
	assert.False(t, ctx.UpdatedAt.Before(before))
}

func TestHistory_LimitReturnsChronologicalTail(t *testing.T) {
	m := NewManager(newMapStore())
	ctx := m.GetOrCreate("s1")

	for _, text := range []string{"one", "two", "three", "four"} {
		m.AddMessage(ctx, "user", text, nil)
	}

	last2 := ctx.History(2)
	require.Len(t, last2, 2)
	assert.Equal(t, "three", last2[0].Content)
	assert.Equal(t, "four", last2[1].Content)

	all := ctx.History(0)
	assert.Len(t, all, 4)
}

func TestFocus_IndependentlySettable(t *testing.T) {
	m := NewManager(newMapStore())
	ctx := m.GetOrCreate("s1")

	single := &entity.Candidate{Id: uuid.New(), Name: "Alice"}
	set := []*entity.Candidate{
		{Id: uuid.New(), Name: "Bob"},
		{Id: uuid.New(), Name: "Carol"},
	}

	m.SetFocusedCandidate(ctx, single)
	m.SetFocusedCandidates(ctx, set)

	assert.Equal(t, single, ctx.FocusedCandidate, "setting the set must not clear the single focus")
	assert.Len(t, ctx.FocusedCandidates, 2)

	m.SetFocusedCandidate(ctx, nil)
	assert.Len(t, ctx.FocusedCandidates, 2, "clearing the single focus must not clear the set")
}

func TestClear_Idempotent(t *testing.T) {
	m := NewManager(newMapStore())
	ctx := m.GetOrCreate("s1")

	m.AddMessage(ctx, "user", "hello", nil)
	m.SetFocusedCandidate(ctx, &entity.Candidate{Id: uuid.New(), Name: "Alice"})
	m.SetLastIntent(ctx, "search")
	m.SetLastQuery(ctx, "find alice", []string{"communication"})

	m.Clear(ctx)
	m.Clear(ctx)

	assert.Empty(t, ctx.Messages)
	assert.Nil(t, ctx.FocusedCandidate)
	assert.Nil(t, ctx.FocusedCandidates)
	assert.Empty(t, ctx.LastIntent)
	assert.Empty(t, ctx.LastQuery)
	assert.Empty(t, ctx.LastTraits)
	assert.Equal(t, "s1", ctx.SessionId)
}

func TestSummarize(t *testing.T) {
	m := NewManager(newMapStore())
	ctx := m.GetOrCreate("s1")

	assert.Equal(t, "No prior conversation state.", m.Summarize(ctx))

	m.SetFocusedCandidate(ctx, &entity.Candidate{Id: uuid.New(), Name: "Alice"})
	m.SetLastIntent(ctx, "search")
	m.SetLastQuery(ctx, "strong leaders", []string{"leadership"})

	digest := m.Summarize(ctx)
	assert.Contains(t, digest, "Alice")
	assert.Contains(t, digest, "search")
	assert.Contains(t, digest, "leadership")
}
