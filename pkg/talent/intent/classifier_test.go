package intent

import (
	"testing"

	"talent-search-be/internal/entity"
	"talent-search-be/pkg/talent/conversation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func contextWithFocusedCandidate(name string) *conversation.Context {
	return &conversation.Context{
		SessionId: "s1",
		FocusedCandidate: &entity.Candidate{
			Id:   uuid.New(),
			Name: name,
		},
	}
}

func contextWithFocusedSet(n int) *conversation.Context {
	ctx := &conversation.Context{SessionId: "s1"}
	for i := 0; i < n; i++ {
		ctx.FocusedCandidates = append(ctx.FocusedCandidates, &entity.Candidate{
			Id:   uuid.New(),
			Name: "candidate",
		})
	}
	return ctx
}

func TestClassify_FollowUpDescribeWithoutName(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(contextWithFocusedCandidate("Alice"), "tell me more about her strengths")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentDescribe, res.SubIntent)
}

func TestClassify_NamedCandidateStillFollowUp(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(contextWithFocusedCandidate("Alice"), "how should I structure an interview with Alice?")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentInterview, res.SubIntent)
	assert.True(t, res.MentionsFocused)
}

func TestClassify_NamedCandidateNoKeywordsDefaultsToDescribe(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(contextWithFocusedCandidate("Alice"), "alice?")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentDescribe, res.SubIntent)
}

func TestClassify_DescribeWinsOverDetail(t *testing.T) {
	// "tell me" (describe) and "more" (detail) both match; describe has
	// higher priority.
	c := NewClassifier()
	res := c.Classify(contextWithFocusedCandidate("Bob"), "tell me more")

	assert.Equal(t, SubIntentDescribe, res.SubIntent)
}

func TestClassify_FocusedSetFilterFromCurrent(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(contextWithFocusedSet(5), "narrow these down to the best communicators")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentFilterFromCurrent, res.SubIntent)
	assert.Equal(t, ScopeCurrent, res.Scope)
	assert.Equal(t, 5, res.SetSize)
}

func TestClassify_FocusedSetExclude(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(contextWithFocusedSet(3), "rule out candidate two")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentExclude, res.SubIntent)
}

func TestClassify_NewSearchWithoutFocus(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(&conversation.Context{SessionId: "s1"}, "start over with a new search")

	assert.True(t, res.IsFollowUp)
	assert.Equal(t, SubIntentNewSearch, res.SubIntent)
	assert.Equal(t, ScopeAll, res.Scope)
}

func TestClassify_TopLevelIntents(t *testing.T) {
	c := NewClassifier()
	empty := &conversation.Context{SessionId: "s1"}

	tests := []struct {
		utterance string
		intent    string
	}{
		{"show all candidates please", IntentListAllCandidates},
		{"which traits can I search on?", IntentListTraits},
		{"how many people are assessed?", IntentStatistics},
		{"any advice for screening?", IntentAdvice},
		{"find me strong communicators", IntentSearch},
	}

	for _, tt := range tests {
		res := c.Classify(empty, tt.utterance)
		assert.Equal(t, tt.intent, res.Intent, "utterance: %s", tt.utterance)
		assert.False(t, res.IsFollowUp, "utterance: %s", tt.utterance)
	}
}

func TestClassify_NilContextDefaultsToSearch(t *testing.T) {
	c := NewClassifier()
	res := c.Classify(nil, "find me strong leaders")

	assert.Equal(t, IntentSearch, res.Intent)
	assert.False(t, res.IsFollowUp)
}
