package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"talent-search-be/internal/constant"
	"talent-search-be/internal/entity"
	"talent-search-be/internal/pkg/logger"
	"talent-search-be/pkg/talent/conversation"
	"talent-search-be/pkg/talent/intent"
	"talent-search-be/pkg/talent/query"
	"talent-search-be/pkg/talent/registry"
	"talent-search-be/pkg/talent/respond"
)

// Turn states. A turn always ends in stateResponded; the context persists
// into the next turn's stateIdle.
const (
	stateIdle       = "idle"
	stateClassified = "classifying"
	stateParsing    = "parsing"
	stateRetrieving = "retrieving"
	stateScoring    = "scoring"
	stateRanked     = "ranked"
	stateResponded  = "responded"
)

// Response is what one conversational turn produces. Failure paths
// degrade to a valid response with Degraded set and guidance in
// Suggestions; the orchestrator never surfaces upstream errors directly.
type Response struct {
	SessionId          string
	Intent             string
	SubIntent          string
	Message            string
	Results            []Result
	TotalCount         int
	QueryUnderstanding string
	ParsedQuery        *query.ParsedQuery
	Suggestions        []string
	Degraded           bool
}

// Orchestrator sequences classification, parsing, retrieval and scoring
// for each turn and keeps the conversation context current.
type Orchestrator struct {
	manager    *conversation.Manager
	classifier *intent.Classifier
	parser     *query.Parser
	retriever  *Retriever
	scorer     *Scorer
	registry   *registry.Registry
	store      CandidateStore
	responder  *respond.Generator
	logger     logger.ILogger
}

func NewOrchestrator(
	manager *conversation.Manager,
	classifier *intent.Classifier,
	parser *query.Parser,
	retriever *Retriever,
	scorer *Scorer,
	reg *registry.Registry,
	store CandidateStore,
	responder *respond.Generator,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		manager:    manager,
		classifier: classifier,
		parser:     parser,
		retriever:  retriever,
		scorer:     scorer,
		registry:   reg,
		store:      store,
		responder:  responder,
		logger:     log,
	}
}

// HandleTurn processes one utterance for one session. Turns within a
// session are serialized via the context lock; different sessions run
// concurrently.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionId, utterance string) *Response {
	sessionCtx := o.manager.GetOrCreate(sessionId)
	sessionCtx.Lock()
	defer sessionCtx.Unlock()

	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionId, "state": stateIdle,
	})

	o.manager.AddMessage(sessionCtx, constant.MessageRoleUser, utterance, nil)

	classification := o.classifier.Classify(sessionCtx, utterance)
	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionId, "state": stateClassified,
		"intent": classification.Intent, "sub_intent": classification.SubIntent,
		"is_follow_up": classification.IsFollowUp,
	})

	var resp *Response
	if classification.IsFollowUp {
		resp = o.handleFollowUp(ctx, sessionCtx, classification, utterance)
	} else {
		resp = o.handleNewQuery(ctx, sessionCtx, classification, utterance)
	}

	resp.SessionId = sessionId
	if resp.Intent == "" {
		resp.Intent = classification.Intent
	}
	resp.SubIntent = classification.SubIntent

	o.manager.SetLastIntent(sessionCtx, resp.Intent)
	o.manager.AddMessage(sessionCtx, constant.MessageRoleAssistant, truncate(resp.Message, 200), map[string]string{
		constant.MessageMetaIntent:    resp.Intent,
		constant.MessageMetaSubIntent: resp.SubIntent,
	})

	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionId, "state": stateResponded, "results": len(resp.Results),
	})
	return resp
}

func (o *Orchestrator) handleFollowUp(ctx context.Context, sessionCtx *conversation.Context, cls intent.Result, utterance string) *Response {
	switch cls.SubIntent {
	case intent.SubIntentDescribe, intent.SubIntentDetail:
		candidate := o.followUpTarget(sessionCtx)
		if candidate == nil {
			return o.noFocusResponse()
		}
		o.registry.Enrich(candidate)
		return &Response{
			Message:            o.responder.Describe(ctx, candidate),
			QueryUnderstanding: fmt.Sprintf("Describing %s based on the current focus.", candidate.Name),
			Suggestions:        []string{"Prepare interview questions", "Compare with other candidates", "Start a new search"},
		}

	case intent.SubIntentInterview:
		candidate := o.followUpTarget(sessionCtx)
		if candidate == nil {
			return o.noFocusResponse()
		}
		o.registry.Enrich(candidate)
		return &Response{
			Message:            o.responder.InterviewOutline(ctx, candidate),
			QueryUnderstanding: fmt.Sprintf("Interview preparation for %s.", candidate.Name),
			Suggestions:        []string{"Describe this candidate", "Start a new search"},
		}

	case intent.SubIntentCompare:
		targets := sessionCtx.FocusedCandidates
		if len(targets) == 0 && sessionCtx.FocusedCandidate != nil {
			targets = []*entity.Candidate{sessionCtx.FocusedCandidate}
		}
		for _, c := range targets {
			o.registry.Enrich(c)
		}
		return &Response{
			Message:            o.responder.Compare(ctx, targets),
			TotalCount:         len(targets),
			QueryUnderstanding: fmt.Sprintf("Comparing the %d candidates from the last result.", len(targets)),
			Suggestions:        []string{"Describe the first candidate", "Exclude one of them", "Start a new search"},
		}

	case intent.SubIntentFilterFromCurrent:
		return o.filterFromCurrent(ctx, sessionCtx, utterance)

	case intent.SubIntentExclude:
		return o.excludeFromCurrent(sessionCtx, utterance)

	case intent.SubIntentNewSearch:
		o.manager.SetFocusedCandidate(sessionCtx, nil)
		o.manager.SetFocusedCandidates(sessionCtx, nil)
		return o.runSearch(ctx, sessionCtx, utterance)

	default:
		// filter_new and anything unlisted widen back out to a fresh
		// search over the full population.
		return o.runSearch(ctx, sessionCtx, utterance)
	}
}

func (o *Orchestrator) handleNewQuery(ctx context.Context, sessionCtx *conversation.Context, cls intent.Result, utterance string) *Response {
	switch cls.Intent {
	case intent.IntentListAllCandidates:
		return o.listAllCandidates(ctx)

	case intent.IntentListTraits:
		return o.listTraits()

	case intent.IntentStatistics:
		return o.statistics(ctx)

	case intent.IntentInterviewPrep:
		candidate := o.followUpTarget(sessionCtx)
		if candidate == nil {
			return &Response{
				Message:     "Tell me which candidate to prepare for, or run a search first.",
				Suggestions: []string{"List all candidates", "Search for a candidate by name"},
			}
		}
		o.registry.Enrich(candidate)
		return &Response{
			Message:            o.responder.InterviewOutline(ctx, candidate),
			QueryUnderstanding: fmt.Sprintf("Interview preparation for %s.", candidate.Name),
		}

	case intent.IntentCompare:
		targets := sessionCtx.FocusedCandidates
		for _, c := range targets {
			o.registry.Enrich(c)
		}
		return &Response{
			Message:            o.responder.Compare(ctx, targets),
			TotalCount:         len(targets),
			Suggestions:        []string{"Search for candidates first", "List all candidates"},
			QueryUnderstanding: "Comparing the current result set.",
		}

	case intent.IntentAdvice:
		return &Response{
			Message:            o.responder.Advice(ctx, utterance),
			QueryUnderstanding: "General hiring advice.",
			Suggestions:        []string{"Search candidates by traits", "List available traits"},
		}

	default:
		return o.runSearch(ctx, sessionCtx, utterance)
	}
}

// runSearch is the Parsing → Retrieving → Scoring → Ranked path.
func (o *Orchestrator) runSearch(ctx context.Context, sessionCtx *conversation.Context, utterance string) *Response {
	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionCtx.SessionId, "state": stateParsing,
	})

	parsed := o.parser.Parse(ctx, utterance, o.manager.Summarize(sessionCtx))
	o.manager.SetLastQuery(sessionCtx, utterance, parsed.TraitKeys())

	if parsed.NeedsClarification() {
		return &Response{
			Intent:             intent.IntentSearch,
			QueryUnderstanding: parsed.Summary,
			ParsedQuery:        parsed,
			Message:            parsed.Clarification,
			Suggestions:        []string{"List available traits", "List all candidates", "Rephrase with specific qualities"},
			Degraded:           true,
		}
	}

	if parsed.CandidateName != "" {
		return o.searchByName(ctx, sessionCtx, parsed)
	}

	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionCtx.SessionId, "state": stateRetrieving,
	})
	candidates, err := o.retriever.Retrieve(ctx, parsed)
	if err != nil {
		o.logger.Error("Orchestrator", "retrieval failed", map[string]interface{}{"error": err.Error()})
		return &Response{
			Intent:             intent.IntentSearch,
			QueryUnderstanding: "The candidate store could not be queried.",
			ParsedQuery:        parsed,
			Message:            "Something went wrong while searching. Please try again.",
			Suggestions:        []string{"Try again", "List all candidates"},
			Degraded:           true,
		}
	}

	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionCtx.SessionId, "state": stateScoring, "retrieved": len(candidates),
	})
	for _, c := range candidates {
		o.registry.Enrich(c)
	}
	results := o.scorer.ScoreAndRank(candidates, parsed)
	if parsed.Limit > 0 && len(results) > parsed.Limit {
		results = results[:parsed.Limit]
	}

	o.logger.Debug("Orchestrator", "turn state", map[string]interface{}{
		"session": sessionCtx.SessionId, "state": stateRanked, "ranked": len(results),
	})

	focused := make([]*entity.Candidate, 0, len(results))
	for _, r := range results {
		focused = append(focused, r.Candidate)
	}
	o.manager.SetFocusedCandidates(sessionCtx, focused)
	if len(focused) == 1 {
		o.manager.SetFocusedCandidate(sessionCtx, focused[0])
	}

	if len(results) == 0 {
		return &Response{
			Intent:             intent.IntentSearch,
			QueryUnderstanding: parsed.Summary,
			ParsedQuery:        parsed,
			Message:            "No candidates matched your request.",
			Suggestions:        []string{"Relax the requirements", "List all candidates", "List available traits"},
		}
	}

	return &Response{
		Intent:             intent.IntentSearch,
		Results:            results,
		TotalCount:         len(results),
		QueryUnderstanding: parsed.Summary,
		ParsedQuery:        parsed,
		Message:            fmt.Sprintf("Found %d matching candidates.", len(results)),
		Suggestions: []string{
			"Describe the first candidate",
			"Compare these candidates",
			"Narrow down from these results",
		},
	}
}

func (o *Orchestrator) searchByName(ctx context.Context, sessionCtx *conversation.Context, parsed *query.ParsedQuery) *Response {
	candidate, err := o.store.FindByName(ctx, parsed.CandidateName)
	if err != nil {
		o.logger.Error("Orchestrator", "name lookup failed", map[string]interface{}{"error": err.Error()})
		return &Response{
			Message:     "Something went wrong while searching. Please try again.",
			Suggestions: []string{"Try again", "List all candidates"},
			Degraded:    true,
		}
	}
	if candidate == nil {
		return &Response{
			Message:            fmt.Sprintf("No candidate named %q was found.", parsed.CandidateName),
			QueryUnderstanding: parsed.Summary,
			ParsedQuery:        parsed,
			Suggestions:        []string{"Check the spelling", "List all candidates"},
		}
	}

	o.registry.Enrich(candidate)
	o.manager.SetFocusedCandidate(sessionCtx, candidate)

	score, reason := o.scorer.Score(candidate, parsed)
	return &Response{
		Results:            []Result{{Candidate: candidate, Score: score, Reason: reason}},
		TotalCount:         1,
		QueryUnderstanding: parsed.Summary,
		ParsedQuery:        parsed,
		Message:            o.responder.Describe(ctx, candidate),
		Suggestions:        []string{"Prepare interview questions", "Start a new search"},
	}
}

// filterFromCurrent re-scores the focused set against freshly parsed
// criteria instead of hitting the store again.
func (o *Orchestrator) filterFromCurrent(ctx context.Context, sessionCtx *conversation.Context, utterance string) *Response {
	current := sessionCtx.FocusedCandidates
	if len(current) == 0 {
		return &Response{
			Message:     "There is no previous result set to narrow down. Run a search first.",
			Suggestions: []string{"Search candidates by traits"},
		}
	}

	parsed := o.parser.Parse(ctx, utterance, o.manager.Summarize(sessionCtx))
	if parsed.NeedsClarification() {
		return &Response{
			Message:     parsed.Clarification,
			ParsedQuery: parsed,
			Suggestions: []string{"Name specific traits to filter by", "List available traits"},
			Degraded:    true,
		}
	}

	results := o.scorer.ScoreAndRank(current, parsed)

	// Only keep candidates that actually carry at least one requested
	// trait; the rest were retained by the loose retrieval of the
	// previous turn.
	kept := results[:0]
	for _, r := range results {
		if hasAnyTrait(r.Candidate, parsed.TraitKeys()) {
			kept = append(kept, r)
		}
	}
	results = kept

	focused := make([]*entity.Candidate, 0, len(results))
	for _, r := range results {
		focused = append(focused, r.Candidate)
	}
	o.manager.SetFocusedCandidates(sessionCtx, focused)

	return &Response{
		Intent:             intent.IntentSearch,
		Results:            results,
		TotalCount:         len(results),
		QueryUnderstanding: fmt.Sprintf("Narrowed the previous %d candidates down to %d.", len(current), len(results)),
		ParsedQuery:        parsed,
		Message:            fmt.Sprintf("%d of the previous %d candidates match the extra requirement.", len(results), len(current)),
		Suggestions:        []string{"Describe the first candidate", "Compare these candidates", "Start a new search"},
	}
}

// excludeFromCurrent drops focused-set members whose names appear in the
// utterance. Purely lexical: no reasoning-service call involved.
func (o *Orchestrator) excludeFromCurrent(sessionCtx *conversation.Context, utterance string) *Response {
	current := sessionCtx.FocusedCandidates
	if len(current) == 0 {
		return &Response{
			Message:     "There is no previous result set to exclude from. Run a search first.",
			Suggestions: []string{"Search candidates by traits"},
		}
	}

	lowered := strings.ToLower(utterance)
	kept := make([]*entity.Candidate, 0, len(current))
	excluded := make([]string, 0)
	for _, c := range current {
		if c.Name != "" && strings.Contains(lowered, strings.ToLower(c.Name)) {
			excluded = append(excluded, c.Name)
			continue
		}
		kept = append(kept, c)
	}

	if len(excluded) == 0 {
		return &Response{
			TotalCount:  len(current),
			Message:     "I could not tell who to exclude. Name the candidate to remove.",
			Suggestions: []string{"Compare these candidates", "Start a new search"},
		}
	}

	o.manager.SetFocusedCandidates(sessionCtx, kept)
	return &Response{
		Intent:             intent.IntentSearch,
		TotalCount:         len(kept),
		QueryUnderstanding: fmt.Sprintf("Excluded %s from the result set.", strings.Join(excluded, ", ")),
		Message:            fmt.Sprintf("Removed %d candidate(s); %d remain.", len(excluded), len(kept)),
		Suggestions:        []string{"Compare the remaining candidates", "Describe the first candidate"},
	}
}

func (o *Orchestrator) listAllCandidates(ctx context.Context) *Response {
	candidates, err := o.store.ListCandidates(ctx, o.retriever.limit, 0)
	if err != nil {
		o.logger.Error("Orchestrator", "list candidates failed", map[string]interface{}{"error": err.Error()})
		return &Response{
			Message:     "The candidate list is unavailable right now.",
			Suggestions: []string{"Try again"},
			Degraded:    true,
		}
	}

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		o.registry.Enrich(c)
		results = append(results, Result{
			Candidate: c,
			Reason:    assessmentSummary(c),
		})
	}

	total, err := o.store.CountCandidates(ctx)
	if err != nil {
		total = int64(len(results))
	}

	return &Response{
		Results:            results,
		TotalCount:         int(total),
		QueryUnderstanding: "Listing all candidates.",
		Message:            fmt.Sprintf("There are %d candidates in total.", total),
		Suggestions:        []string{"Search by traits", "Show statistics"},
	}
}

func (o *Orchestrator) listTraits() *Response {
	defs := o.registry.List()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d traits are available:\n", len(defs))
	for _, def := range defs {
		fmt.Fprintf(&sb, "- %s", def.DisplayName)
		if def.Description != "" {
			fmt.Fprintf(&sb, ": %s", def.Description)
		}
		sb.WriteString("\n")
	}

	return &Response{
		TotalCount:         len(defs),
		QueryUnderstanding: "Listing the trait registry.",
		Message:            sb.String(),
		Suggestions:        []string{"Search candidates by one of these traits"},
	}
}

func (o *Orchestrator) statistics(ctx context.Context) *Response {
	candidates, err := o.store.ListCandidates(ctx, 0, 0)
	if err != nil {
		o.logger.Error("Orchestrator", "statistics query failed", map[string]interface{}{"error": err.Error()})
		return &Response{
			Message:     "Statistics are unavailable right now.",
			Suggestions: []string{"Try again"},
			Degraded:    true,
		}
	}

	var assessed int
	var totalResults int
	traitSums := make(map[string]float64)
	traitCounts := make(map[string]int)
	for _, c := range candidates {
		if n := c.AssessedTraitCount(); n > 0 {
			assessed++
			totalResults += n
		}
		for key, result := range c.TraitResults {
			traitSums[key] += result.Score
			traitCounts[key]++
		}
	}
	avg := 0.0
	if assessed > 0 {
		avg = float64(totalResults) / float64(assessed)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		"%d candidates total, %d with at least one completed assessment, averaging %.1f assessments each. The registry defines %d traits.",
		len(candidates), assessed, avg, o.registry.Len(),
	)
	if len(traitSums) > 0 {
		sb.WriteString("\nAverage scores by trait:\n")
		keys := make([]string, 0, len(traitSums))
		for key := range traitSums {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			name := key
			if def, ok := o.registry.Resolve(key); ok {
				name = def.DisplayName
			}
			fmt.Fprintf(&sb, "- %s: %.1f\n", name, traitSums[key]/float64(traitCounts[key]))
		}
	}

	return &Response{
		TotalCount:         len(candidates),
		QueryUnderstanding: "Candidate pool statistics.",
		Message:            sb.String(),
		Suggestions:        []string{"List all candidates", "Search by traits"},
	}
}

func (o *Orchestrator) followUpTarget(sessionCtx *conversation.Context) *entity.Candidate {
	if sessionCtx.FocusedCandidate != nil {
		return sessionCtx.FocusedCandidate
	}
	if len(sessionCtx.FocusedCandidates) > 0 {
		return sessionCtx.FocusedCandidates[0]
	}
	return nil
}

func (o *Orchestrator) noFocusResponse() *Response {
	return &Response{
		Message:     "No candidate is in focus. Search for one first.",
		Suggestions: []string{"Search candidates by traits", "List all candidates"},
	}
}

func hasAnyTrait(candidate *entity.Candidate, keys []string) bool {
	for _, key := range keys {
		if _, ok := candidate.TraitResults[key]; ok {
			return true
		}
	}
	return false
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
