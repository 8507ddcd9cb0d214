package intent

import (
	"strings"

	"talent-search-be/pkg/talent/conversation"
)

// Top-level intents
const (
	IntentSearch            = "search"
	IntentListAllCandidates = "list_all_candidates"
	IntentListTraits        = "list_traits"
	IntentInterviewPrep     = "interview_prep"
	IntentStatistics        = "statistics"
	IntentCompare           = "compare"
	IntentAdvice            = "advice"
)

// Follow-up sub-intents, only meaningful when a focused candidate or
// candidate set exists.
const (
	SubIntentDescribe          = "describe"
	SubIntentInterview         = "interview"
	SubIntentCompare           = "compare"
	SubIntentDetail            = "detail"
	SubIntentFilterFromCurrent = "filter_from_current"
	SubIntentFilterNew         = "filter_new"
	SubIntentExclude           = "exclude"
	SubIntentNewSearch         = "new_search"
)

// Scope constants
const (
	ScopeAll     = "all"
	ScopeCurrent = "current"
)

// Result is the classification outcome for one utterance.
type Result struct {
	Intent     string
	SubIntent  string
	IsFollowUp bool
	Scope      string
	// SetSize is the size of the focused candidate set when Scope is
	// "current".
	SetSize int
	// MentionsFocused is true when the utterance names the focused
	// candidate. Naming them still counts as a follow-up.
	MentionsFocused bool
}

// keywordRule pairs a sub-intent with its trigger phrases. Rules are
// evaluated top to bottom; the first match wins, so order is the
// priority: describe < interview < compare < detail <
// filter_from_current < filter_new < exclude < new_search.
type keywordRule struct {
	subIntent string
	keywords  []string
}

var followUpRules = []keywordRule{
	{SubIntentDescribe, []string{"describe", "tell me", "about", "strengths", "abilities", "traits", "how is", "introduce", "what is"}},
	{SubIntentInterview, []string{"interview", "questions to ask", "prepare", "outline"}},
	{SubIntentCompare, []string{"compare", "versus", " vs ", "difference", "which is better", "which one"}},
	{SubIntentDetail, []string{"detail", "more", "specific", "deeper", "elaborate"}},
	{SubIntentFilterFromCurrent, []string{"from these", "from them", "among them", "among these", "of those", "narrow", "refine", "filter"}},
	{SubIntentFilterNew, []string{"also find", "find more", "another", "similar", "in addition", "as well"}},
	{SubIntentExclude, []string{"exclude", "remove", "without", "except", "drop", "rule out"}},
	{SubIntentNewSearch, []string{"new search", "start over", "start fresh", "different batch", "search again", "forget these", "reset"}},
}

var topLevelRules = []keywordRule{
	{IntentListAllCandidates, []string{"list all", "show all", "all candidates", "everyone", "every candidate"}},
	{IntentListTraits, []string{"list traits", "what traits", "which traits", "available traits", "trait list"}},
	{IntentStatistics, []string{"statistic", "how many", "count", "average", "distribution", "overview"}},
	{IntentInterviewPrep, []string{"interview"}},
	{IntentCompare, []string{"compare", "versus", " vs "}},
	{IntentAdvice, []string{"advice", "suggest", "recommend", "should i", "how do i"}},
}

// Classifier applies the deterministic, rule-first classification. No
// LLM call is involved: ambiguity is resolved by the rule order alone.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify decides the intent for one utterance against the session
// state. A focused single candidate takes precedence over a focused set;
// naming the focused candidate still counts as a follow-up so "tell me
// about Alice's strengths" keeps the established focus.
func (c *Classifier) Classify(sessionCtx *conversation.Context, utterance string) Result {
	query := strings.ToLower(strings.TrimSpace(utterance))

	if sessionCtx != nil && sessionCtx.FocusedCandidate != nil {
		mentions := sessionCtx.FocusedCandidate.Name != "" &&
			strings.Contains(query, strings.ToLower(sessionCtx.FocusedCandidate.Name))
		if sub, ok := matchRules(followUpRules, query); ok {
			return Result{
				Intent:          subIntentTopLevel(sub),
				SubIntent:       sub,
				IsFollowUp:      true,
				Scope:           ScopeCurrent,
				SetSize:         1,
				MentionsFocused: mentions,
			}
		}
		if mentions {
			// Named but no keyword match: default to describe.
			return Result{
				Intent:          subIntentTopLevel(SubIntentDescribe),
				SubIntent:       SubIntentDescribe,
				IsFollowUp:      true,
				Scope:           ScopeCurrent,
				SetSize:         1,
				MentionsFocused: true,
			}
		}
	}

	if sessionCtx != nil && len(sessionCtx.FocusedCandidates) > 0 {
		setSize := len(sessionCtx.FocusedCandidates)
		for _, sub := range []string{SubIntentFilterFromCurrent, SubIntentCompare, SubIntentExclude} {
			if matchesRule(followUpRules, sub, query) {
				return Result{
					Intent:     subIntentTopLevel(sub),
					SubIntent:  sub,
					IsFollowUp: true,
					Scope:      ScopeCurrent,
					SetSize:    setSize,
				}
			}
		}
	}

	if matchesRule(followUpRules, SubIntentNewSearch, query) {
		return Result{
			Intent:     IntentSearch,
			SubIntent:  SubIntentNewSearch,
			IsFollowUp: true,
			Scope:      ScopeAll,
		}
	}

	if top, ok := matchRules(topLevelRules, query); ok {
		return Result{Intent: top, Scope: ScopeAll}
	}

	return Result{Intent: IntentSearch, Scope: ScopeAll}
}

func matchRules(rules []keywordRule, query string) (string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return rule.subIntent, true
			}
		}
	}
	return "", false
}

func matchesRule(rules []keywordRule, subIntent, query string) bool {
	for _, rule := range rules {
		if rule.subIntent != subIntent {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return true
			}
		}
	}
	return false
}

// subIntentTopLevel maps a follow-up sub-intent to the top-level intent
// reported to callers.
func subIntentTopLevel(sub string) string {
	switch sub {
	case SubIntentInterview:
		return IntentInterviewPrep
	case SubIntentCompare:
		return IntentCompare
	case SubIntentFilterFromCurrent, SubIntentFilterNew, SubIntentExclude, SubIntentNewSearch:
		return IntentSearch
	default:
		return IntentSearch
	}
}
